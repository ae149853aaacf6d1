package public

import (
	handlershared "github.com/brandsite-api/internal/http/handlers/shared"
	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

var waitlistErrorRules = []handlershared.MappedError{
	{Target: service.ErrWaitlistDuplicate, Code: response.CodeConflict, Msg: "this email is already on the waitlist"},
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackCode int, fallbackMsg string) {
	handlershared.RespondMappedError(c, err, rules, fallbackCode, fallbackMsg)
}
