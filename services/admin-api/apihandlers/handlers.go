package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/events"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/engine"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AdminUser is a configured API login with a bcrypt password hash.
type AdminUser struct {
	Username     string `json:"username" yaml:"username"`
	PasswordHash string `json:"password_hash" yaml:"password_hash"`
	IsOwner      bool   `json:"is_owner" yaml:"is_owner"`
}

type HttpEndpoints struct {
	registrationService *registrations.Service
	eventService        *events.Service
	formEngine          *engine.Engine
	adminUsers          []AdminUser
	tokenSignKey        string
	tokenExpiresIn      time.Duration
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	registrationService *registrations.Service,
	eventService *events.Service,
	formEngine *engine.Engine,
	adminUsers []AdminUser,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:        tokenSignKey,
		tokenExpiresIn:      tokenExpiresIn,
		registrationService: registrationService,
		eventService:        eventService,
		formEngine:          formEngine,
		adminUsers:          adminUsers,
	}
}
