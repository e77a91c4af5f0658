package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/tapovan/attendance-api/pkg/errors"
)

// ErrorBody wraps the error payload returned for failed requests.
type ErrorBody struct {
	Error *appErrors.Error `json:"error"`
}

// JSON sends a success response with the payload as the body. The public
// contract returns bare arrays and objects, so no envelope is applied.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
