package notify

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
	"github.com/joseph-ayodele/letters-tracker/internal/entity"
)

type mockSender struct{ mock.Mock }

func (m *mockSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	if r := args.Get(0); r != nil {
		return r.(*resend.SendEmailResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

var cfg = common.NotifyConfig{ResendAPIKey: "re_test", From: "letters@example.org", To: []string{"desk@example.org"}}

func sample() rules.StructuredRecord {
	return rules.StructuredRecord{
		ReceivedByOffice: "जिल्हाधिकारी कार्यालय, पुणे",
		LetterType:       "तक्रार",
		LetterDate:       "15/03/2024",
		LetterSubject:    "रस्ता दुरुस्ती बाबत तक्रार",
		Remarks:          "रस्ता दुरुस्ती बाबत तक्रार",
		MobileNumber:     "9876543210",
		ActionType:       rules.DefaultActionType,
	}
}

func TestNotifier_Sends(t *testing.T) {
	s := new(mockSender)
	s.On("SendWithContext", mock.Anything, mock.MatchedBy(func(p *resend.SendEmailRequest) bool {
		return p.From == cfg.From &&
			assert.ObjectsAreEqual(cfg.To, p.To) &&
			p.Subject == "नवीन पत्र: तक्रार (15/03/2024)"
	})).Return(&resend.SendEmailResponse{Id: "em_1"}, nil)

	n := newNotifier(s, cfg, prometheus.NewRegistry(), slog.New(slog.DiscardHandler))
	file := &entity.LetterFile{ID: uuid.New(), SourcePath: "/in/letter-17.pdf"}
	require.NoError(t, n.LetterExtracted(context.Background(), file, uuid.New(), sample()))

	params := s.Calls[0].Arguments.Get(1).(*resend.SendEmailRequest)
	assert.Contains(t, params.Html, "रस्ता दुरुस्ती बाबत तक्रार")
	assert.Contains(t, params.Html, "9876543210")
	assert.Contains(t, params.Html, "letter-17.pdf")
	assert.Equal(t, 1.0, testutil.ToFloat64(n.metrics.sentCount))
	s.AssertExpectations(t)
}

func TestNotifier_SendFailureCounts(t *testing.T) {
	s := new(mockSender)
	s.On("SendWithContext", mock.Anything, mock.Anything).Return(nil, errors.New("422 validation_error"))

	n := newNotifier(s, cfg, prometheus.NewRegistry(), slog.New(slog.DiscardHandler))
	err := n.LetterExtracted(context.Background(), nil, uuid.New(), sample())
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(n.metrics.errorCount))
	assert.Zero(t, testutil.ToFloat64(n.metrics.sentCount))
}

func TestNotifier_DisabledIsNoop(t *testing.T) {
	n := New(common.NotifyConfig{}, prometheus.NewRegistry(), slog.New(slog.DiscardHandler))
	assert.False(t, n.Enabled())
	assert.NoError(t, n.LetterExtracted(context.Background(), nil, uuid.New(), sample()))

	var nilNotifier *Notifier
	assert.False(t, nilNotifier.Enabled())
}
