package Services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"IranElaj/Models"
	"IranElaj/Repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingRequests struct {
	Repositories.RequestRepository
}

func (failingRequests) Create(context.Context, *Models.MedicalRequest) error {
	return errors.New("connection refused")
}

func newRequestService(t *testing.T, sender *fakeSender) (*RequestService, *Models.User) {
	t.Helper()
	cfg := testConfig()
	cfg.MessagingAPIToken = "real-token"
	cfg.MessagingPhoneID = "123"

	users := Repositories.NewMemoryUserRepository()
	user := &Models.User{FullName: "Sara", WhatsApp: "+989120000001"}
	require.NoError(t, users.Create(context.Background(), user))

	requests := Repositories.NewMemoryRequestRepository(users)
	svc := NewRequestService(cfg, requests, users, NewNotifier(cfg, sender, zap.NewNop()), zap.NewNop())
	return svc, user
}

func TestCreateRequest(t *testing.T) {
	sender := &fakeSender{}
	svc, user := newRequestService(t, sender)

	request, result, err := svc.Create(context.Background(), CreateRequestInput{
		UserID:      user.ID,
		Condition:   "  chest pain  ",
		Specialties: []string{"cardiology", "other"},
		Files:       []FileInput{{FileName: "ecg.pdf", FilePath: "/uploads/ecg.pdf"}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, request.ID)
	assert.Equal(t, Models.StatusNew, request.Status)
	assert.Equal(t, "chest pain", request.Condition)
	assert.Equal(t, []string{"cardiology", "other"}, request.SpecialtyIDs())
	assert.Equal(t, "Sara", request.User.FullName)
	assert.True(t, result.Delivered)

	require.Len(t, sender.calls, 1)
	body := sender.calls[0].body
	assert.Contains(t, body, "👤 *Name:* Sara\n")
	assert.Contains(t, body, "🏥 *Specialty:* Cardiology, Other Specialties\n")
	assert.Contains(t, body, "📋 *Condition:* chest pain\n")
	assert.Contains(t, body, "\n📎 *Files:*\nhttps://iranelaj.com/uploads/ecg.pdf\n")
	assert.True(t, strings.HasSuffix(body, "\n🔗 *Admin Panel:* https://iranelaj.com/admin"))

	stored, err := svc.Get(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusNew, stored.Status)
	assert.Len(t, stored.Files, 1)
}

func TestCreateRequest_NotificationFailureStillCreates(t *testing.T) {
	sender := &fakeSender{err: errors.New("timeout")}
	svc, user := newRequestService(t, sender)

	request, result, err := svc.Create(context.Background(), CreateRequestInput{UserID: user.ID, Condition: "knee"})

	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.True(t, strings.HasPrefix(result.FallbackLink, "https://wa.me/989120995507?text="))

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, request.ID, all[0].ID)
}

func TestCreateRequest_Validation(t *testing.T) {
	sender := &fakeSender{}
	svc, user := newRequestService(t, sender)

	_, _, err := svc.Create(context.Background(), CreateRequestInput{UserID: user.ID, Condition: " "})
	assert.Equal(t, KindValidation, KindOf(err))

	_, _, err = svc.Create(context.Background(), CreateRequestInput{UserID: "missing", Condition: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = svc.Create(context.Background(), CreateRequestInput{
		UserID:    user.ID,
		Condition: "x",
		Files:     []FileInput{{FileName: "a.jpg"}},
	})
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Empty(t, sender.calls)
}

func TestCreateRequest_StoreFailureSkipsNotification(t *testing.T) {
	cfg := testConfig()
	users := Repositories.NewMemoryUserRepository()
	user := &Models.User{FullName: "Sara", WhatsApp: "+1"}
	require.NoError(t, users.Create(context.Background(), user))
	sender := &fakeSender{}
	svc := NewRequestService(cfg, failingRequests{}, users, NewNotifier(cfg, sender, zap.NewNop()), zap.NewNop())

	_, _, err := svc.Create(context.Background(), CreateRequestInput{UserID: user.ID, Condition: "x"})

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Empty(t, sender.calls)
}

func TestUpdateStatus_AnyTransition(t *testing.T) {
	svc, user := newRequestService(t, &fakeSender{})
	request, _, err := svc.Create(context.Background(), CreateRequestInput{UserID: user.ID, Condition: "x"})
	require.NoError(t, err)

	for _, status := range []Models.RequestStatus{Models.StatusCompleted, Models.StatusNew, Models.StatusRejected, Models.StatusApproved} {
		updated, err := svc.UpdateStatus(context.Background(), request.ID, string(status))
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc, user := newRequestService(t, &fakeSender{})
	request, _, err := svc.Create(context.Background(), CreateRequestInput{UserID: user.ID, Condition: "x"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), request.ID, "archived")
	assert.Equal(t, KindValidation, KindOf(err))

	stored, err := svc.Get(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusNew, stored.Status, "rejected update leaves the request untouched")

	_, err = svc.UpdateStatus(context.Background(), "missing", "approved")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestListAndStats(t *testing.T) {
	svc, user := newRequestService(t, &fakeSender{})
	ctx := context.Background()

	first, _, err := svc.Create(ctx, CreateRequestInput{UserID: user.ID, Condition: "first"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, _, err = svc.Create(ctx, CreateRequestInput{UserID: user.ID, Condition: "second"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, first.ID, "approved")
	require.NoError(t, err)

	approved, err := svc.List(ctx, "approved")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "first", approved[0].Condition)

	_, err = svc.List(ctx, "bogus")
	assert.Equal(t, KindValidation, KindOf(err))

	mine, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "second", mine[0].Condition)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus[Models.StatusApproved])
	assert.Equal(t, int64(1), stats.ByStatus[Models.StatusNew])
	assert.Len(t, stats.ByStatus, len(Models.AllStatuses))
}

func TestContactLink(t *testing.T) {
	svc, user := newRequestService(t, &fakeSender{})
	request, _, err := svc.Create(context.Background(), CreateRequestInput{UserID: user.ID, Condition: "x"})
	require.NoError(t, err)

	raw, err := svc.ContactLink(context.Background(), request.ID)
	require.NoError(t, err)

	link, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/989120000001", link.Path)
	assert.Equal(t, "سلام Sara، این تیم ایران‌علاج است.", link.Query().Get("text"))

	_, err = svc.ContactLink(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
