package main

import (
	"context"
	"time"

	"progress_service/internal/repository"
	"progress_service/internal/service"
	"progress_service/pkg/kafka"
	"progress_service/pkg/logger"
)

// ReviewReminderWorker periodically finds graded submissions that nobody
// has reviewed or released yet and emits reminder events for them.
type ReviewReminderWorker struct {
	submissionRepo *repository.SubmissionRepository
	kafkaProducer  *kafka.Producer
	logger         *logger.Logger
	interval       time.Duration
}

func NewReviewReminderWorker(
	submissionRepo *repository.SubmissionRepository,
	kafkaProducer *kafka.Producer,
	logger *logger.Logger,
	interval time.Duration,
) *ReviewReminderWorker {
	return &ReviewReminderWorker{
		submissionRepo: submissionRepo,
		kafkaProducer:  kafkaProducer,
		logger:         logger,
		interval:       interval,
	}
}

func (w *ReviewReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("review reminder worker stopped")
			return
		case <-ticker.C:
			w.processReminders(ctx)
		}
	}
}

func (w *ReviewReminderWorker) processReminders(ctx context.Context) {
	submissions, err := w.submissionRepo.ListAwaitingReview(ctx)
	if err != nil {
		w.logger.Errorf("Failed to list submissions awaiting review: %v", err)
		return
	}

	for _, submission := range submissions {
		message := map[string]interface{}{
			"submission_id": submission.ID,
			"assignment_id": submission.AssignmentID,
			"user_id":       submission.UserID,
			"group_id":      submission.GroupID,
			"score":         submission.Score,
		}

		if err := w.kafkaProducer.Send(ctx, service.TopicReviewReminder, message); err != nil {
			w.logger.Errorf("Failed to send reminder for submission %d: %v", submission.ID, err)
			continue
		}

		w.logger.Infof("Sent review reminder for submission %d", submission.ID)
	}
}
