package handler // handler defines the HTTP handlers of the health API

import (
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "strconv"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/saniya-gs/health-recommendation-system/internal/middleware"
)

// errNoUser means a protected handler ran without RequireSession.
var errNoUser = errors.New("no authenticated user in context")

// RequestValidator adapts go-playground/validator to echo.Validator.
type RequestValidator struct {
    v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
    return &RequestValidator{v: validator.New()}
}

func (rv *RequestValidator) Validate(i interface{}) error {
    return rv.v.Struct(i)
}

// decodeJSON reads the request body as JSON whatever the Content-Type.  An
// empty body leaves v untouched.
func decodeJSON(c echo.Context, v any) error {
    err := c.Echo().JSONSerializer.Deserialize(c, v)
    if errors.Is(err, io.EOF) {
        return nil
    }
    return err
}

func currentUser(c echo.Context) (uint64, error) {
    id, ok := middleware.UserID(c)
    if !ok {
        return 0, errNoUser
    }
    return id, nil
}

func errorJSON(c echo.Context, status int, msg string) error {
    return c.JSON(status, echo.Map{"error": msg})
}

func invalidBody(c echo.Context) error {
    return errorJSON(c, http.StatusBadRequest, "Invalid request body")
}

func unauthenticated(c echo.Context) error {
    return errorJSON(c, http.StatusUnauthorized, "Not authenticated")
}

// listLimit reads ?limit=, defaulting to 20 and capping at 100.
func listLimit(c echo.Context) int {
    n, err := strconv.Atoi(c.QueryParam("limit"))
    if err != nil || n <= 0 {
        return 20
    }
    if n > 100 {
        return 100
    }
    return n
}

// textOrJSON keeps strings as is and JSON-encodes anything else for a text
// column.  nil stays nil.
func textOrJSON(v any) *string {
    switch t := v.(type) {
    case nil:
        return nil
    case string:
        return &t
    default:
        s := jsonText(t)
        return &s
    }
}

// jsonText renders a decoded JSON value as compact text ("12", "true").
func jsonText(v any) string {
    switch t := v.(type) {
    case string:
        return t
    case float64:
        return strconv.FormatFloat(t, 'f', -1, 64)
    case bool:
        return strconv.FormatBool(t)
    case nil:
        return "null"
    default:
        if b, err := json.Marshal(t); err == nil {
            return string(b)
        }
        return fmt.Sprint(t)
    }
}
