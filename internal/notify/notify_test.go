package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"belutin-web/internal/config"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func TestQueueSenderEnqueuesPayload(t *testing.T) {
	logger, _ := test.NewNullLogger()
	q := new(mockEnqueuer)
	expires := time.Now().Add(5 * time.Minute).Truncate(time.Second)

	q.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		p, err := ParseOTPPayload(task)
		return err == nil && task.Type() == TypeOTPSend && p.Email == "petani@belut.in" && p.Code == "123456" && p.ExpiresAt.Equal(expires)
	})).Return(&asynq.TaskInfo{ID: "t1", Queue: "critical"}, nil)

	err := NewQueueSender(q, logger).SendOTP(context.Background(), "petani@belut.in", "123456", expires)
	require.NoError(t, err)
	q.AssertExpectations(t)
}

func TestQueueSenderPropagatesErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()
	q := new(mockEnqueuer)
	q.On("EnqueueContext", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	err := NewQueueSender(q, logger).SendOTP(context.Background(), "a@b.c", "111111", time.Now().Add(time.Minute))
	assert.ErrorContains(t, err, "redis down")
}

func TestParseOTPPayloadRejectsEmpty(t *testing.T) {
	_, err := ParseOTPPayload(asynq.NewTask(TypeOTPSend, []byte(`{"email":""}`)))
	assert.Error(t, err)
	_, err = ParseOTPPayload(asynq.NewTask(TypeOTPSend, []byte(`not json`)))
	assert.Error(t, err)
}

func TestSMTPSenderBuildsMessage(t *testing.T) {
	logger, _ := test.NewNullLogger()
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s := NewSMTPSender("smtp.example.com", 2525, "user", "pass", "no-reply@belut.in", logger).
		WithSendFunc(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			assert.NotNil(t, a)
			return nil
		})

	require.NoError(t, s.SendOTP(context.Background(), "petani@belut.in", "654321", time.Now().Add(time.Minute)))
	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, "no-reply@belut.in", gotFrom)
	assert.Equal(t, []string{"petani@belut.in"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Kode OTP BELUT.IN\r\n")
	assert.Contains(t, string(gotMsg), "<b>654321</b>")
}

func TestBuildOTPMessageRejectsHeaderInjection(t *testing.T) {
	_, err := BuildOTPMessage("a@b.c", "x@y.z\r\nBcc: evil@example.com", "1", time.Now())
	assert.Error(t, err)
}

func TestLogSender(t *testing.T) {
	logger, hook := test.NewNullLogger()
	require.NoError(t, NewLogSender(logger).SendOTP(context.Background(), "a@b.c", "222222", time.Now()))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "222222", hook.LastEntry().Data["code"])
}

func TestDirectPicksSender(t *testing.T) {
	logger, _ := test.NewNullLogger()

	s, err := Direct(&config.Config{AppEnv: "development"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "log", s.Name())

	s, err = Direct(&config.Config{AppEnv: "production", SMTPHost: "smtp.example.com", SMTPPort: 587}, logger)
	require.NoError(t, err)
	assert.Equal(t, "smtp", s.Name())

	_, err = Direct(&config.Config{AppEnv: "production"}, logger)
	assert.ErrorIs(t, err, ErrNoMailer)
}
