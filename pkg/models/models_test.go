package models

import "testing"

// TestResultStatus tests status derivation and exit codes
func TestResultStatus(t *testing.T) {
	t.Run("CleanRunIsSuccess", func(t *testing.T) {
		r := &Result{FilesCopied: 2, FilesSkipped: 1}
		if r.Status() != StatusSuccess {
			t.Errorf("Status() = %s, want %s", r.Status(), StatusSuccess)
		}
		if r.Status().ExitCode() != 0 {
			t.Errorf("ExitCode() = %d, want 0", r.Status().ExitCode())
		}
	})

	t.Run("SoftFailuresArePartialButExitZero", func(t *testing.T) {
		r := &Result{}
		r.AddError("copy failed: /some/file")
		if r.Status() != StatusPartial {
			t.Errorf("Status() = %s, want %s", r.Status(), StatusPartial)
		}
		if r.Status().ExitCode() != 0 {
			t.Errorf("ExitCode() = %d, want 0", r.Status().ExitCode())
		}
	})

	t.Run("FailedExitsNonZero", func(t *testing.T) {
		if StatusFailed.ExitCode() == 0 {
			t.Error("StatusFailed must exit non-zero")
		}
	})

	t.Run("ErrorOrderPreserved", func(t *testing.T) {
		r := &Result{}
		r.AddError("first")
		r.AddError("second")
		if r.Errors[0] != "first" || r.Errors[1] != "second" {
			t.Errorf("Errors = %v, want ordered [first second]", r.Errors)
		}
	})
}

// TestOperationValidate tests run configuration validation
func TestOperationValidate(t *testing.T) {
	valid := Operation{
		ID:         "op-1",
		SourceRoot: "/home/user/.sessions/projects",
		Prefix:     "-home-user-repo",
		TargetRoot: "/home/user/repo/.sessync/sessions",
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Operation)
	}{
		{"MissingSource", func(op *Operation) { op.SourceRoot = "" }},
		{"MissingPrefix", func(op *Operation) { op.Prefix = "" }},
		{"MissingTarget", func(op *Operation) { op.TargetRoot = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := valid
			tt.mutate(&op)
			if err := op.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
