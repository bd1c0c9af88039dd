package http

import (
	"net/http"

	"tracker/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

const anyMediaType = "*/*"

// NewOpenAPIValidator returns middleware that validates requests against doc.
// Requests for routes the document does not describe pass through unchanged.
// Operations whose request body accepts "*/*" are validated without their
// body, which the handler reads raw.
func NewOpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}
	rawBodyOptions := *options
	rawBodyOptions.ExcludeRequestBody = true

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if acceptsAnyMediaType(route.Operation) {
				input.Options = &rawBodyOptions
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validateErr.Error(),
				})
			}

			return next(ctx)
		}
	}, nil
}

func acceptsAnyMediaType(op *openapi3.Operation) bool {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return false
	}
	_, ok := op.RequestBody.Value.Content[anyMediaType]
	return ok
}
