// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package system

import (
	"context"
	"log/slog"

	"github.com/Darigraye/MEPHI-practice/internal/platform/ctxutil"
)

// Journal writes START/FINISH rows to al_log.
//
// Journal writes never fail the business action: a failed insert is logged
// through slog and swallowed.
type Journal struct {
	repository LogRepository
}

func NewJournal(repository LogRepository) *Journal {
	return &Journal{repository: repository}
}

// Start records that action began.
func (journal *Journal) Start(context context.Context, sender, action string) {
	journal.write(context, LogInfo, StatusStart, sender, action, "")
}

// Finish records that action completed.
func (journal *Journal) Finish(context context.Context, sender, action, description string) {
	journal.write(context, LogInfo, StatusFinish, sender, action, description)
}

// Error records that action failed with cause.
func (journal *Journal) Error(context context.Context, sender, action string, cause error) {
	description := ""
	if cause != nil {
		description = cause.Error()
	}
	journal.write(context, LogError, StatusFinish, sender, action, description)
}

// Track wraps fn in Start and Finish (or Error) rows. fn returns the
// description stored with the FINISH row.
func (journal *Journal) Track(context context.Context, sender, action string, fn func() (string, error)) error {
	journal.Start(context, sender, action)

	description, err := fn()
	if err != nil {
		journal.Error(context, sender, action, err)
		return err
	}

	journal.Finish(context, sender, action, description)
	return nil
}

func (journal *Journal) write(context context.Context, logType LogType, status LogStatus, sender, action, description string) {
	entry := &LogEntry{
		Sender:      truncate(sender, MaxSenderLen),
		Type:        logType,
		Action:      truncate(action, MaxActionLen),
		Description: description,
		Login:       ctxutil.GetActorLogin(context),
		Status:      status,
	}

	if err := journal.repository.Insert(context, entry); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "journal_write_failed",
			slog.String("sender", sender),
			slog.String("action", action),
			slog.Any("error", err),
		)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
