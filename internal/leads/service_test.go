package leads_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"conferly/internal/leads"
	"conferly/internal/shared/apperrors"
	"conferly/internal/shared/config"
	"conferly/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type sentAttachment struct {
	to   string
	name string
	data []byte
}

type recordingMailer struct {
	mu          sync.Mutex
	htmlTo      []string
	attachments []sentAttachment
}

func (m *recordingMailer) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.htmlTo = append(m.htmlTo, to)
	return nil
}

func (m *recordingMailer) SendWithAttachment(ctx context.Context, to, subject, htmlBody, attachmentName string, attachment []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachments = append(m.attachments, sentAttachment{to: to, name: attachmentName, data: attachment})
	return nil
}

func (m *recordingMailer) htmlRecipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.htmlTo...)
}

func (m *recordingMailer) sentAttachments() []sentAttachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentAttachment{}, m.attachments...)
}

func newLeadServiceWithMailer(t *testing.T, mailer leads.Mailer, emailCfg config.EmailConfig) leads.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&leads.Contact{},
		&leads.SpeakerLead{},
		&leads.SponsorLead{},
		&leads.Subscriber{},
	))

	repo := leads.NewRepository(db)
	return leads.NewService(repo, mailer, emailCfg, logger.GetDefault())
}

func newLeadService(t *testing.T) leads.Service {
	t.Helper()
	return newLeadServiceWithMailer(t, nil, config.EmailConfig{})
}

func writeBrochure(t *testing.T) (string, []byte) {
	t.Helper()
	content := []byte("%PDF-1.4 brochure")
	path := filepath.Join(t.TempDir(), "brochure.pdf")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path, content
}

func TestSubscribe_DuplicateEmailRejected(t *testing.T) {
	svc := newLeadService(t)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, leads.SubscribeRequest{Email: "dana@example.com"})
	require.NoError(t, err)

	_, err = svc.Subscribe(ctx, leads.SubscribeRequest{Email: "dana@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestSubmitContact_SameEmailNewMessageAllowed(t *testing.T) {
	svc := newLeadService(t)
	ctx := context.Background()

	first := leads.ContactRequest{
		FirstName: "Dana", LastName: "Ives",
		Email: "dana@example.com", Message: "When do doors open?",
	}
	_, err := svc.SubmitContact(ctx, first)
	require.NoError(t, err)

	// Identical resubmission is a duplicate
	_, err = svc.SubmitContact(ctx, first)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	// A new message from the same person is fine
	second := first
	second.Message = "Is parking available?"
	contact, err := svc.SubmitContact(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, contact.ID.String(), "")
}

func TestSubmitContact_AttachesBrochureWhenConfigured(t *testing.T) {
	path, content := writeBrochure(t)
	mailer := &recordingMailer{}
	svc := newLeadServiceWithMailer(t, mailer, config.EmailConfig{BrochurePath: path})

	_, err := svc.SubmitContact(context.Background(), leads.ContactRequest{
		FirstName: "Dana", LastName: "Ives",
		Email: "dana@example.com", Message: "Please send details",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(mailer.sentAttachments()) == 1
	}, time.Second, 10*time.Millisecond)

	sent := mailer.sentAttachments()[0]
	assert.Equal(t, "dana@example.com", sent.to)
	assert.Equal(t, "conference-brochure.pdf", sent.name)
	assert.Equal(t, content, sent.data)
}

func TestSubmitContact_PlainAcknowledgmentWithoutBrochure(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newLeadServiceWithMailer(t, mailer, config.EmailConfig{})

	_, err := svc.SubmitContact(context.Background(), leads.ContactRequest{
		FirstName: "Dana", LastName: "Ives",
		Email: "dana@example.com", Message: "Please send details",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(mailer.htmlRecipients()) >= 1
	}, time.Second, 10*time.Millisecond)

	assert.Contains(t, mailer.htmlRecipients(), "dana@example.com")
	assert.Empty(t, mailer.sentAttachments())
}

func TestSubmitSponsorLead_AttachesBrochureWhenConfigured(t *testing.T) {
	path, content := writeBrochure(t)
	mailer := &recordingMailer{}
	svc := newLeadServiceWithMailer(t, mailer, config.EmailConfig{BrochurePath: path})

	_, err := svc.SubmitSponsorLead(context.Background(), leads.SponsorLeadRequest{
		FirstName: "Robin", LastName: "Sage",
		Email: "robin@example.com", Company: "Globex",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(mailer.sentAttachments()) == 1
	}, time.Second, 10*time.Millisecond)

	sent := mailer.sentAttachments()[0]
	assert.Equal(t, "robin@example.com", sent.to)
	assert.Equal(t, content, sent.data)
}

func TestSubmitSpeakerLead_DedupedByEmail(t *testing.T) {
	svc := newLeadService(t)
	ctx := context.Background()

	req := leads.SpeakerLeadRequest{
		FirstName: "Kai", LastName: "Lund",
		Email: "kai@example.com", Topic: "Edge caching",
	}

	lead, err := svc.SubmitSpeakerLead(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Edge caching", lead.Topic)

	req.Topic = "Another topic"
	_, err = svc.SubmitSpeakerLead(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestSubmitSponsorLead_Persisted(t *testing.T) {
	svc := newLeadService(t)
	ctx := context.Background()

	lead, err := svc.SubmitSponsorLead(ctx, leads.SponsorLeadRequest{
		FirstName: "Robin", LastName: "Sage",
		Email: "robin@example.com", Company: "Globex",
	})
	require.NoError(t, err)
	assert.Equal(t, "Globex", lead.Company)

	_, err = svc.SubmitSponsorLead(ctx, leads.SponsorLeadRequest{
		FirstName: "Robin", LastName: "Sage",
		Email: "robin@example.com", Company: "Globex",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestListContacts_NewestFirst(t *testing.T) {
	svc := newLeadService(t)
	ctx := context.Background()

	_, err := svc.SubmitContact(ctx, leads.ContactRequest{
		FirstName: "Dana", LastName: "Ives",
		Email: "dana@example.com", Message: "First question",
	})
	require.NoError(t, err)

	// Distinct created_at for the ordering assertion
	time.Sleep(2 * time.Millisecond)

	_, err = svc.SubmitContact(ctx, leads.ContactRequest{
		FirstName: "Sam", LastName: "Reed",
		Email: "sam@example.com", Message: "Second question",
	})
	require.NoError(t, err)

	contacts, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Second question", contacts[0].Message)
	assert.Equal(t, "First question", contacts[1].Message)
}

func TestListSubscribers_ReturnsAll(t *testing.T) {
	svc := newLeadService(t)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, leads.SubscribeRequest{Email: "dana@example.com"})
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, leads.SubscribeRequest{Email: "sam@example.com"})
	require.NoError(t, err)

	subscribers, err := svc.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subscribers, 2)
}
