package leads

import (
	"net/http"

	"conferly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SubmitContact handles POST /api/v1/leads/contact
func (c *Controller) SubmitContact(ctx *gin.Context) {
	var req ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, gin.H{"details": err.Error()})
		return
	}

	contact, err := c.service.SubmitContact(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Message received", contact)
}

// SubmitSpeakerLead handles POST /api/v1/leads/speaker
func (c *Controller) SubmitSpeakerLead(ctx *gin.Context) {
	var req SpeakerLeadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, gin.H{"details": err.Error()})
		return
	}

	lead, err := c.service.SubmitSpeakerLead(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Proposal received", lead)
}

// SubmitSponsorLead handles POST /api/v1/leads/sponsor
func (c *Controller) SubmitSponsorLead(ctx *gin.Context) {
	var req SponsorLeadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, gin.H{"details": err.Error()})
		return
	}

	lead, err := c.service.SubmitSponsorLead(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Enquiry received", lead)
}

// Subscribe handles POST /api/v1/leads/subscribe
func (c *Controller) Subscribe(ctx *gin.Context) {
	var req SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, gin.H{"details": err.Error()})
		return
	}

	subscriber, err := c.service.Subscribe(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Subscribed", subscriber)
}

// ListContacts handles GET /api/v1/leads/contacts (admin)
func (c *Controller) ListContacts(ctx *gin.Context) {
	contacts, err := c.service.ListContacts(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Contacts retrieved", contacts)
}

// ListSubscribers handles GET /api/v1/leads/subscribers (admin)
func (c *Controller) ListSubscribers(ctx *gin.Context) {
	subscribers, err := c.service.ListSubscribers(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Subscribers retrieved", subscribers)
}
