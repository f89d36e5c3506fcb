package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// /tmp/
	//   repo/ (.jot)
	//     subdir/
	//       nested/
	//   configured/ (jot.yaml)
	//   empty/

	baseDir := t.TempDir()
	repoDir := filepath.Join(baseDir, "repo")
	subDir := filepath.Join(repoDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	configuredDir := filepath.Join(baseDir, "configured")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{nestedDir, configuredDir, emptyDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(repoDir, DataDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configuredDir, "jot.yaml"), []byte("adapter: memory\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: repoDir, wantRoot: repoDir},
		{name: "Start Nested Deeply", startPath: nestedDir, wantRoot: repoDir},
		{name: "Config File Marks Root", startPath: configuredDir, wantRoot: configuredDir},
		{name: "No Root Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != "" && filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}

	t.Run("ResolveDataDir", func(t *testing.T) {
		got, err := ResolveDataDir(nestedDir)
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(repoDir, DataDir); got != want {
			t.Errorf("ResolveDataDir() = %v, want %v", got, want)
		}

		got, err = ResolveDataDir(emptyDir)
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(emptyDir, DataDir); got != want {
			t.Errorf("ResolveDataDir() = %v, want %v", got, want)
		}
	})
}
