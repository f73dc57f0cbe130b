package fileops

import (
	"context"
	"os"

	apperrors "jetpack/internal/errors"
	"jetpack/internal/logging"
)

// safeWriteState names the observable on-disk state of a safe write.
type safeWriteState string

const (
	stateStaged        safeWriteState = "staged"
	stateBackedUp      safeWriteState = "backed_up"
	stateLive          safeWriteState = "live"
	stateBackupCleared safeWriteState = "backup_cleared"
)

// Safe write steps, reported in OperationError.Step.
const (
	stepStage   = "stage"
	stepBackup  = "backup"
	stepPromote = "promote"
	stepCleanup = "cleanup"
)

// safeWrite runs stage, backup, promote and cleanup in order. A failed step
// stops the sequence; completed renames are not undone, so staging and
// backup files may remain for manual recovery. An explicit mode is also
// applied to a staging file left over from an earlier attempt.
func (o *Ops) safeWrite(ctx context.Context, path string, payload []byte, mode os.FileMode) error {
	staging := o.stagingPath(path)
	backup := o.backupPath(path)
	logger := logging.ForOperation(o.logger, "safe_write", path)

	if err := o.writeEnsuringDir(ctx, staging, payload, fileMode(mode)); err != nil {
		return apperrors.NewOperationError("write", stepStage, path, err)
	}
	if mode != 0 {
		if err := o.fs.Chmod(staging, mode); err != nil {
			return apperrors.NewOperationError("write", stepStage, path, err)
		}
	}
	logger.DebugContext(ctx, "Safe write transition", "state", stateStaged, "staging", staging)

	backedUp, err := o.moveAside(path, backup)
	if err != nil {
		return apperrors.NewOperationError("write", stepBackup, path, err)
	}
	if backedUp {
		logger.DebugContext(ctx, "Safe write transition", "state", stateBackedUp, "backup", backup)
	}

	if err := o.fs.Rename(staging, path); err != nil {
		logger.WarnContext(ctx, "Failed to promote staging file, leaving remnants for recovery",
			"staging", staging,
			"backed_up", backedUp,
			"error", err)
		return apperrors.NewOperationError("write", stepPromote, path, err)
	}
	logger.DebugContext(ctx, "Safe write transition", "state", stateLive)

	if !backedUp {
		return nil
	}

	if err := o.fs.Remove(backup); err != nil {
		return apperrors.NewOperationError("write", stepCleanup, path, err)
	}
	logger.DebugContext(ctx, "Safe write transition", "state", stateBackupCleared)
	return nil
}

// moveAside renames path to backup. A missing path is not an error and
// reports backedUp=false.
func (o *Ops) moveAside(path, backup string) (bool, error) {
	err := o.fs.Rename(path, backup)
	if err == nil {
		return true, nil
	}
	if apperrors.Classify(err) == apperrors.KindNotFound {
		return false, nil
	}
	return false, err
}
