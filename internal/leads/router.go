package leads

import (
	"conferly/internal/shared/config"
	"conferly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupLeadRoutes configures the public lead-intake routes plus the
// admin listings
func SetupLeadRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	leads := rg.Group("/leads")
	{
		leads.POST("/contact", controller.SubmitContact)      // POST /api/v1/leads/contact
		leads.POST("/speaker", controller.SubmitSpeakerLead)  // POST /api/v1/leads/speaker
		leads.POST("/sponsor", controller.SubmitSponsorLead)  // POST /api/v1/leads/sponsor
		leads.POST("/subscribe", controller.Subscribe)        // POST /api/v1/leads/subscribe
	}

	admin := rg.Group("/leads")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.GET("/contacts", controller.ListContacts)       // GET /api/v1/leads/contacts
		admin.GET("/subscribers", controller.ListSubscribers) // GET /api/v1/leads/subscribers
	}
}
