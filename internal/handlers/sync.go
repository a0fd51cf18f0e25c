package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/starford/ansuz/internal/gitsync"
	"github.com/starford/ansuz/internal/models"
)

// Sync reads one SyncRequest JSON object, runs the sync state machine, and
// emits the SyncResult envelope. The returned error is non-nil exactly when
// the envelope carries ok:false.
func Sync(ctx context.Context, syncer *gitsync.Syncer, stdin io.Reader, stdout io.Writer, inputPath string) error {
	raw, err := readInput(stdin, inputPath)
	if err != nil {
		slog.Error("sync failed", slog.String("error", err.Error()))
		writeResult(stdout, models.SyncResult{OK: false, Actions: []string{}, Error: err.Error(), ErrorKind: errorKind(err)})
		return err
	}

	var req models.SyncRequest
	if err := decodeInput(raw, &req); err != nil {
		slog.Error("sync failed", slog.String("error", err.Error()))
		writeResult(stdout, models.SyncResult{OK: false, Actions: []string{}, Error: err.Error(), ErrorKind: errorKind(err)})
		return err
	}

	res := syncer.Sync(ctx, &req)
	writeResult(stdout, res)
	if !res.OK {
		slog.Error("sync failed", slog.String("error", res.Error))
		return errors.New(res.Error)
	}
	slog.Info("sync complete",
		slog.Any("actions", res.Actions),
		slog.String("commit_hash", res.CommitHash))
	return nil
}
