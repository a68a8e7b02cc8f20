package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tyemirov/projsnap/internal/utils"
)

type configTestCase struct {
	name            string
	globalContent   string
	localContent    string
	explicitPath    string
	explicitContent string
	expectTree      string
	expectArchive   string
	expectClipboard *bool
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name: "no_files",
		},
		{
			name:            "global_only",
			globalContent:   "tree:\n  output: global_tree.txt\n  clipboard: true\narchive:\n  output: global.zip\n",
			expectTree:      "global_tree.txt",
			expectArchive:   "global.zip",
			expectClipboard: boolPointer(true),
		},
		{
			name:            "local_overrides_global",
			globalContent:   "tree:\n  output: global_tree.txt\n  clipboard: true\narchive:\n  output: global.zip\n",
			localContent:    "tree:\n  clipboard: false\narchive:\n  output: local.zip\n",
			expectTree:      "global_tree.txt",
			expectArchive:   "local.zip",
			expectClipboard: boolPointer(false),
		},
		{
			name:            "explicit_path_replaces_local",
			localContent:    "archive:\n  output: local.zip\n",
			explicitPath:    "custom.conf",
			explicitContent: "archive:\n  output: explicit.zip\n",
			expectArchive:   "explicit.zip",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			if testCase.globalContent != "" {
				configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
				if err := os.MkdirAll(configDir, 0o755); err != nil {
					t.Fatalf("create config dir: %v", err)
				}
				if err := os.WriteFile(filepath.Join(configDir, utils.GlobalConfigFileName), []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				if err := os.WriteFile(filepath.Join(workingDir, utils.ConfigFileName), []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				if err := os.WriteFile(filepath.Join(workingDir, testCase.explicitPath), []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			if loadedConfig.Tree.Output != testCase.expectTree {
				t.Fatalf("expected tree output %q, got %q", testCase.expectTree, loadedConfig.Tree.Output)
			}
			if loadedConfig.Archive.Output != testCase.expectArchive {
				t.Fatalf("expected archive output %q, got %q", testCase.expectArchive, loadedConfig.Archive.Output)
			}
			switch {
			case testCase.expectClipboard == nil && loadedConfig.Tree.Clipboard != nil:
				t.Fatalf("expected clipboard unset, got %v", *loadedConfig.Tree.Clipboard)
			case testCase.expectClipboard != nil && (loadedConfig.Tree.Clipboard == nil || *loadedConfig.Tree.Clipboard != *testCase.expectClipboard):
				t.Fatalf("expected clipboard %v, got %v", *testCase.expectClipboard, loadedConfig.Tree.Clipboard)
			}
		})
	}
}

func TestLoadApplicationConfigurationRejectsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	workingDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(workingDir, utils.ConfigFileName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error when configuration path is a directory")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	workingDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workingDir, utils.ConfigFileName), []byte("tree: [unclosed\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error for malformed configuration")
	}
}

func TestMergeClonesClipboard(t *testing.T) {
	override := ApplicationConfiguration{Tree: TreeConfiguration{Clipboard: boolPointer(true)}}
	merged := ApplicationConfiguration{}.Merge(override)
	*override.Tree.Clipboard = false
	if !merged.Tree.ClipboardEnabled() {
		t.Fatalf("merged configuration must not alias the override")
	}
}
