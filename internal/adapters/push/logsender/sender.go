// Package logsender es el sender de desarrollo: loguea el mensaje y reporta éxito para cada token.
package logsender

import (
	"context"

	"guidedog-records/internal/platform/logger"
	"guidedog-records/internal/ports/push"
)

type Sender struct {
	log logger.Logger
}

func New(log logger.Logger) *Sender {
	if log == nil {
		log = logger.Nop()
	}
	return &Sender{log: log}
}

func (s *Sender) SendMulticast(ctx context.Context, msg push.Message) (push.BatchResult, error) {
	logger.FromContext(ctx, s.log).Info("push multicast", logger.Fields{
		"title":  msg.Notification.Title,
		"body":   msg.Notification.Body,
		"type":   msg.Data.Type,
		"id":     msg.Data.ID,
		"url":    msg.Data.URL,
		"tokens": len(msg.Tokens),
	})

	res := push.BatchResult{
		SuccessCount: len(msg.Tokens),
		Results:      make([]push.SendResult, 0, len(msg.Tokens)),
	}
	for _, t := range msg.Tokens {
		res.Results = append(res.Results, push.SendResult{Token: t, Success: true})
	}
	return res, nil
}
