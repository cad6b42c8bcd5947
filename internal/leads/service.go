package leads

import (
	"context"
	"fmt"
	"os"
	"time"

	"conferly/internal/shared/config"
	"conferly/pkg/logger"
)

// Mailer sends the acknowledgment and admin notification mails.
// Implemented by the notifications package.
type Mailer interface {
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
	SendWithAttachment(ctx context.Context, to, subject, htmlBody, attachmentName string, attachment []byte) error
}

// Service handles website lead intake. Persistence is authoritative;
// the emails are best effort and never fail the submission.
type Service interface {
	SubmitContact(ctx context.Context, req ContactRequest) (*Contact, error)
	SubmitSpeakerLead(ctx context.Context, req SpeakerLeadRequest) (*SpeakerLead, error)
	SubmitSponsorLead(ctx context.Context, req SponsorLeadRequest) (*SponsorLead, error)
	Subscribe(ctx context.Context, req SubscribeRequest) (*Subscriber, error)
	ListContacts(ctx context.Context) ([]Contact, error)
	ListSubscribers(ctx context.Context) ([]Subscriber, error)
}

type service struct {
	repo     Repository
	mailer   Mailer
	emailCfg config.EmailConfig
	log      *logger.Logger
}

func NewService(repo Repository, mailer Mailer, emailCfg config.EmailConfig, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		mailer:   mailer,
		emailCfg: emailCfg,
		log:      log,
	}
}

func (s *service) SubmitContact(ctx context.Context, req ContactRequest) (*Contact, error) {
	contact := &Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
	}

	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	s.sendAsync(func(mailCtx context.Context) {
		s.sendWithBrochure(mailCtx, contact.Email, contact.FirstName,
			"Thanks for getting in touch",
			"We received your message and will get back to you shortly.")
		s.notifyAdmin(mailCtx, "New contact message",
			fmt.Sprintf("%s %s (%s) wrote:<br/><br/>%s", contact.FirstName, contact.LastName, contact.Email, contact.Message))
	})

	return contact, nil
}

func (s *service) SubmitSpeakerLead(ctx context.Context, req SpeakerLeadRequest) (*SpeakerLead, error) {
	lead := &SpeakerLead{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		Topic:     req.Topic,
		Bio:       req.Bio,
	}

	if err := s.repo.CreateSpeakerLead(ctx, lead); err != nil {
		return nil, err
	}

	s.sendAsync(func(mailCtx context.Context) {
		s.acknowledge(mailCtx, lead.Email, lead.FirstName,
			"We received your speaking proposal",
			fmt.Sprintf("Thank you for proposing the talk %q. Our programme team will review it and respond soon.", lead.Topic))
		s.notifyAdmin(mailCtx, "New speaker proposal",
			fmt.Sprintf("%s %s (%s, %s) proposed: %s", lead.FirstName, lead.LastName, lead.Email, lead.Company, lead.Topic))
	})

	return lead, nil
}

func (s *service) SubmitSponsorLead(ctx context.Context, req SponsorLeadRequest) (*SponsorLead, error) {
	lead := &SponsorLead{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		Phone:     req.Phone,
	}

	if err := s.repo.CreateSponsorLead(ctx, lead); err != nil {
		return nil, err
	}

	s.sendAsync(func(mailCtx context.Context) {
		s.sendWithBrochure(mailCtx, lead.Email, lead.FirstName,
			"Sponsorship opportunities",
			"Thank you for your interest in sponsoring. We will be in touch shortly.")
		s.notifyAdmin(mailCtx, "New sponsorship enquiry",
			fmt.Sprintf("%s %s from %s (%s) asked about sponsorship.", lead.FirstName, lead.LastName, lead.Company, lead.Email))
	})

	return lead, nil
}

func (s *service) Subscribe(ctx context.Context, req SubscribeRequest) (*Subscriber, error) {
	subscriber := &Subscriber{Email: req.Email}

	if err := s.repo.CreateSubscriber(ctx, subscriber); err != nil {
		return nil, err
	}

	s.sendAsync(func(mailCtx context.Context) {
		s.acknowledge(mailCtx, subscriber.Email, "",
			"You are subscribed",
			"Thanks for subscribing. We will keep you posted about the conference.")
	})

	return subscriber, nil
}

// ListContacts returns the admin view of contact messages
func (s *service) ListContacts(ctx context.Context) ([]Contact, error) {
	return s.repo.ListContacts(ctx)
}

// ListSubscribers returns the admin view of newsletter subscribers
func (s *service) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	return s.repo.ListSubscribers(ctx)
}

// sendWithBrochure acknowledges the submitter with the conference
// brochure attached when one is configured and present on disk,
// otherwise falls back to a plain acknowledgment.
func (s *service) sendWithBrochure(ctx context.Context, to, firstName, subject, message string) {
	if s.emailCfg.BrochurePath != "" {
		if brochure, err := os.ReadFile(s.emailCfg.BrochurePath); err == nil {
			body := fmt.Sprintf("<html><body><p>Hi %s,</p><p>%s</p><p>The conference brochure is attached.</p></body></html>", firstName, message)
			if err := s.mailer.SendWithAttachment(ctx, to, subject, body, "conference-brochure.pdf", brochure); err != nil {
				s.log.ErrorWithContext(ctx, "Failed to send brochure", err, map[string]interface{}{"recipient": to})
			}
			return
		}
	}

	s.acknowledge(ctx, to, firstName, subject, message)
}

func (s *service) acknowledge(ctx context.Context, to, firstName, subject, message string) {
	greeting := "Hi,"
	if firstName != "" {
		greeting = "Hi " + firstName + ","
	}
	body := fmt.Sprintf("<html><body><p>%s</p><p>%s</p></body></html>", greeting, message)

	if err := s.mailer.SendHTML(ctx, to, subject, body, message); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to send acknowledgment email", err, map[string]interface{}{"recipient": to})
	}
}

func (s *service) notifyAdmin(ctx context.Context, subject, htmlBody string) {
	if s.emailCfg.AdminEmail == "" {
		return
	}
	body := "<html><body><p>" + htmlBody + "</p></body></html>"
	if err := s.mailer.SendHTML(ctx, s.emailCfg.AdminEmail, subject, body, ""); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to notify admin", err, map[string]interface{}{"subject": subject})
	}
}

func (s *service) sendAsync(send func(ctx context.Context)) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		send(ctx)
	}()
}
