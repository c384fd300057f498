package worker

import (
	"belutin-web/internal/notify"
	"belutin-web/internal/service"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// RegisterHandlers wires every task type the worker consumes.
func RegisterHandlers(mux *asynq.ServeMux, sender service.OTPSender, logger *logrus.Logger) {
	otp := NewOTPTaskHandler(sender, logger)
	mux.HandleFunc(notify.TypeOTPSend, otp.Handle)
}
