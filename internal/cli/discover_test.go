package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// makeRepo creates a fake git repository at dir
func makeRepo(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}
}

// TestFindGitRoot tests git repository discovery by ancestor walk
func TestFindGitRoot(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "work", "project")
	nested := filepath.Join(repo, "pkg", "deep")
	makeRepo(t, repo)
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	t.Run("FromRoot", func(t *testing.T) {
		got, ok := FindGitRoot(repo)
		if !ok || got != repo {
			t.Errorf("FindGitRoot(%q) = %q, %v, want %q, true", repo, got, ok, repo)
		}
	})

	t.Run("FromNestedDir", func(t *testing.T) {
		got, ok := FindGitRoot(nested)
		if !ok || got != repo {
			t.Errorf("FindGitRoot(%q) = %q, %v, want %q, true", nested, got, ok, repo)
		}
	})

	t.Run("OutsideAnyRepo", func(t *testing.T) {
		outside := filepath.Join(root, "work")
		if got, ok := FindGitRoot(outside); ok {
			t.Errorf("FindGitRoot(%q) = %q, true, want not found", outside, got)
		}
	})
}

// TestFindRepoRoot tests that discovery requires an initialized sync directory
func TestFindRepoRoot(t *testing.T) {
	const syncDir = ".sessync/sessions"

	root := t.TempDir()
	outer := filepath.Join(root, "outer")
	inner := filepath.Join(outer, "vendor", "inner")
	makeRepo(t, outer)
	makeRepo(t, inner)

	// Only the outer repository is initialized.
	if _, _, err := InitializeRepo(outer, syncDir); err != nil {
		t.Fatalf("InitializeRepo() error = %v", err)
	}

	t.Run("SkipsUninitializedRepo", func(t *testing.T) {
		got, ok := FindRepoRoot(inner, syncDir)
		if !ok || got != outer {
			t.Errorf("FindRepoRoot(%q) = %q, %v, want %q, true", inner, got, ok, outer)
		}
	})

	t.Run("FindsInitializedRepo", func(t *testing.T) {
		got, ok := FindRepoRoot(outer, syncDir)
		if !ok || got != outer {
			t.Errorf("FindRepoRoot(%q) = %q, %v, want %q, true", outer, got, ok, outer)
		}
	})

	t.Run("NothingInitialized", func(t *testing.T) {
		bare := filepath.Join(root, "bare")
		makeRepo(t, bare)
		if got, ok := FindRepoRoot(bare, syncDir); ok {
			t.Errorf("FindRepoRoot(%q) = %q, true, want not found", bare, got)
		}
	})
}

// TestDefaultSourceRoot tests the environment override and home default
func TestDefaultSourceRoot(t *testing.T) {
	t.Run("EnvironmentOverride", func(t *testing.T) {
		t.Setenv(EnvSourceDir, "/srv/sessions")

		got, err := DefaultSourceRoot()
		if err != nil {
			t.Fatalf("DefaultSourceRoot() error = %v", err)
		}
		if got != "/srv/sessions" {
			t.Errorf("DefaultSourceRoot() = %q, want %q", got, "/srv/sessions")
		}
	})

	t.Run("HomeDefault", func(t *testing.T) {
		t.Setenv(EnvSourceDir, "")

		home, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}

		got, err := DefaultSourceRoot()
		if err != nil {
			t.Fatalf("DefaultSourceRoot() error = %v", err)
		}
		want := filepath.Join(home, ".sessions", "projects")
		if got != want {
			t.Errorf("DefaultSourceRoot() = %q, want %q", got, want)
		}
	})
}

// TestInitializeRepo tests sync directory provisioning
func TestInitializeRepo(t *testing.T) {
	const syncDir = ".sessync/sessions"

	repo := t.TempDir()
	makeRepo(t, repo)

	dir, markerCreated, err := InitializeRepo(repo, syncDir)
	if err != nil {
		t.Fatalf("InitializeRepo() error = %v", err)
	}
	if dir != filepath.Join(repo, syncDir) {
		t.Errorf("sync dir = %q, want %q", dir, filepath.Join(repo, syncDir))
	}
	if !markerCreated {
		t.Error("first init should create the marker file")
	}
	if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err != nil {
		t.Errorf("marker file missing: %v", err)
	}

	// Running init again must not fail or recreate the marker.
	_, markerCreated, err = InitializeRepo(repo, syncDir)
	if err != nil {
		t.Fatalf("second InitializeRepo() error = %v", err)
	}
	if markerCreated {
		t.Error("second init should not recreate the marker file")
	}
}
