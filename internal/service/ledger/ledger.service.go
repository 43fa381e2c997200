package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/robinclaw/robinclaw/internal/config"
	"github.com/robinclaw/robinclaw/internal/constant"
	"github.com/robinclaw/robinclaw/internal/entity"
	"github.com/robinclaw/robinclaw/internal/repository"
	"github.com/robinclaw/robinclaw/internal/util"
	"github.com/sirupsen/logrus"
)

// LedgerService consumes journaled fills from the ledger stream and persists
// them. Failed messages are republished with an incremented retry counter up
// to the configured maximum, then dropped.
type LedgerService struct {
	js              nats.JetStreamContext
	tradeRecordRepo *repository.TradeRecordRepository
}

func NewLedgerService(js nats.JetStreamContext, tradeRecordRepo *repository.TradeRecordRepository) *LedgerService {
	return &LedgerService{
		js:              js,
		tradeRecordRepo: tradeRecordRepo,
	}
}

// JetstreamEventInit creates or updates the ledger stream so the worker can
// start before any publisher has.
func (s *LedgerService) JetstreamEventInit(ctx context.Context) error {
	streamConfig := &nats.StreamConfig{
		Name:      constant.LedgerStreamName,
		Subjects:  []string{constant.LedgerStreamSubjectAll},
		Retention: nats.WorkQueuePolicy,
		Storage:   nats.FileStorage,
		MaxAge:    24 * time.Hour,
	}

	stream, err := s.js.StreamInfo(constant.LedgerStreamName, nats.Context(ctx))
	if err != nil && !errors.Is(err, nats.ErrStreamNotFound) {
		logrus.Error(err)
		return err
	}

	if stream == nil {
		logrus.Infof("creating stream: %s", constant.LedgerStreamName)
		_, err = s.js.AddStream(streamConfig, nats.Context(ctx))
		return err
	}

	_, err = s.js.UpdateStream(streamConfig, nats.Context(ctx))
	if err != nil {
		logrus.Error(err)
		return err
	}

	return nil
}

func (s *LedgerService) Subscribe() error {
	_, err := s.js.QueueSubscribe(
		constant.LedgerStreamSubjectFill,
		constant.LedgerQueueName,
		func(msg *nats.Msg) {
			err := util.ProcessWithTimeout(config.Env.NatsJetstream.TimeoutHandler["fill"], msg, s.handleFillEvent)
			if err != nil {
				logrus.Errorf("error processing message: %v", err)
				return
			}

			err = msg.Ack()
			if err != nil {
				logrus.Errorf("failed to acknowledge message: %v", err)
				return
			}
		},
		nats.ManualAck(),
		nats.Durable(constant.LedgerQueueGroup),
	)
	if err != nil {
		logrus.Error(err)
		return err
	}

	logrus.WithField("subject", constant.LedgerStreamSubjectFill).Info("ledger worker subscribed")

	return nil
}

func (s *LedgerService) handleFillEvent(ctx context.Context, msg *nats.Msg) (err error) {
	logger := logrus.WithFields(logrus.Fields{
		"req": string(msg.Data),
	})

	var event *entity.FillEvent
	err = json.Unmarshal(msg.Data, &event)
	if err != nil {
		logger.Error(err)
		return err
	}

	defer func() {
		if err != nil {
			logger.Error(err)
			event.RetryCount++
			if event.RetryCount >= config.Env.NatsJetstream.MaxRetries {
				return
			}

			err := util.PublishEvent(s.js, constant.LedgerStreamSubjectFill, event)
			if err != nil {
				logger.Error(err)
				return
			}
		}
	}()

	err = s.tradeRecordRepo.Create(ctx, &event.Data)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"symbol": event.Data.Symbol,
		"side":   event.Data.Side,
		"status": event.Data.Status,
	}).Info("trade record persisted")

	return nil
}
