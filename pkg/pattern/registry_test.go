package pattern

import (
	"os"
	"path/filepath"
	"testing"
)

func testConvention(name, version string) *Convention {
	conv := Default()
	conv.Name = name
	conv.Version = version
	conv.compiled = nil
	return conv
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	if registry == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Built-in convention is always present
	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}

	builtin, ok := registry.Get(DefaultName)
	if !ok {
		t.Fatal("Get() should find the built-in convention")
	}
	if !builtin.IsCompiled() {
		t.Error("built-in convention should be compiled")
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	conv := testConvention("test-convention", "1.0.0")

	if err := registry.Register(conv); err != nil {
		t.Errorf("Register() error = %v", err)
	}

	if registry.Count() != 2 {
		t.Errorf("Count() = %d, want 2", registry.Count())
	}

	// Registering nil should fail
	if err := registry.Register(nil); err == nil {
		t.Error("Register(nil) should return error")
	}

	// Registering same version should fail
	if err := registry.Register(testConvention("test-convention", "1.0.0")); err == nil {
		t.Error("Register() duplicate should return error")
	}

	// Registering different version should succeed
	if err := registry.Register(testConvention("test-convention", "2.0.0")); err != nil {
		t.Errorf("Register() new version error = %v", err)
	}
}

func TestRegistryRegisterInvalid(t *testing.T) {
	registry := NewRegistry()

	// Convention without required fields
	invalid := &Convention{Name: "invalid"}
	if err := registry.Register(invalid); err == nil {
		t.Error("Register() invalid convention should return error")
	}

	// Convention with an invalid regex
	badRegex := testConvention("bad-regex", "1.0.0")
	badRegex.Patterns.Clause = `[invalid`
	if err := registry.Register(badRegex); err == nil {
		t.Error("Register() invalid regex should return error")
	}

	// Convention whose clause pattern compiles but captures nothing;
	// accepting it would hand the parser a classifier that cannot
	// extract the clause number.
	noGroups := testConvention("no-groups", "1.0.0")
	noGroups.Patterns.Clause = `^\d+\.\s*.*`
	if err := registry.Register(noGroups); err == nil {
		t.Error("Register() pattern without capture groups should return error")
	}
	if _, ok := registry.Get("no-groups"); ok {
		t.Error("rejected convention should not be registered")
	}
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(testConvention("test-convention", "1.0.0")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := registry.Unregister("test-convention"); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}

	// Unregister non-existent should fail
	if err := registry.Unregister("non-existent"); err == nil {
		t.Error("Unregister() non-existent should return error")
	}

	// The built-in convention cannot be removed
	if err := registry.Unregister(DefaultName); err == nil {
		t.Error("Unregister() built-in should return error")
	}
}

func TestRegistryListByLanguage(t *testing.T) {
	registry := NewRegistry()

	lao := testConvention("laos-statute", "1.0.0")
	lao.Language = "lo"
	if err := registry.Register(lao); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	second := testConvention("vietnam-decree", "1.0.0")
	second.Language = "vi"
	if err := registry.Register(second); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Case-insensitive lookup; built-in counts toward "vi"
	viConventions := registry.ListByLanguage("VI")
	if len(viConventions) != 2 {
		t.Errorf("ListByLanguage(VI) len = %d, want 2", len(viConventions))
	}

	loConventions := registry.ListByLanguage("lo")
	if len(loConventions) != 1 {
		t.Errorf("ListByLanguage(lo) len = %d, want 1", len(loConventions))
	}

	if got := registry.ListByLanguage("fr"); len(got) != 0 {
		t.Errorf("ListByLanguage(fr) len = %d, want 0", len(got))
	}
}

func TestRegistryClear(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(testConvention("test-convention", "1.0.0")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	registry.Clear()

	// Clear keeps the built-in convention
	if registry.Count() != 1 {
		t.Errorf("Count() after Clear() = %d, want 1", registry.Count())
	}
	if _, ok := registry.Get(DefaultName); !ok {
		t.Error("built-in convention should survive Clear()")
	}
}

func TestRegistryLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	convFile := filepath.Join(tmpDir, "decree.yaml")

	yamlContent := `
name: "vietnam-decree"
version: "1.0.0"
language: "vi"
keywords:
  chapter: "Chương"
  article: "Điều"
  clause: "Khoản"
  point: "Điểm"
patterns:
  chapter: '(?i)^Chương\s+([IVXLCDM]+|\d+)'
  article: '(?i)^Điều\s+(\d+[a-zđ]?)'
  clause: '^(\d+)\.\s*(.*)'
  point: '^([a-zđA-ZĐ])\)\s*(.*)'
`

	if err := os.WriteFile(convFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	registry := NewRegistry()
	if err := registry.LoadFile(convFile); err != nil {
		t.Errorf("LoadFile() error = %v", err)
	}

	conv, ok := registry.Get("vietnam-decree")
	if !ok {
		t.Fatal("Get() should find loaded convention")
	}
	if conv.Language != "vi" {
		t.Errorf("Language = %q, want %q", conv.Language, "vi")
	}
	if !conv.IsCompiled() {
		t.Error("convention should be compiled after loading")
	}
}

func TestRegistryLoadDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	conventions := map[string]string{
		"conv-a.yaml": `
name: "conv-a"
version: "1.0.0"
keywords:
  chapter: "Chương"
  article: "Điều"
  clause: "Khoản"
  point: "Điểm"
patterns:
  chapter: '^Chương\s+(\d+)'
  article: '^Điều\s+(\d+)'
  clause: '^(\d+)\.\s*(.*)'
  point: '^([a-z])\)\s*(.*)'
`,
		"conv-b.yml": `
name: "conv-b"
version: "1.0.0"
keywords:
  chapter: "Chương"
  article: "Điều"
  clause: "Khoản"
  point: "Điểm"
patterns:
  chapter: '^Chương\s+(\d+)'
  article: '^Điều\s+(\d+)'
  clause: '^(\d+)\.\s*(.*)'
  point: '^([a-z])\)\s*(.*)'
`,
		"not-a-convention.txt": "This should be ignored",
	}

	for name, content := range conventions {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}

	registry := NewRegistry()
	if err := registry.LoadDirectory(tmpDir); err != nil {
		t.Errorf("LoadDirectory() error = %v", err)
	}

	// Built-in plus the two loaded files
	if registry.Count() != 3 {
		t.Errorf("Count() = %d, want 3", registry.Count())
	}

	if _, ok := registry.Get("conv-a"); !ok {
		t.Error("conv-a should be loaded")
	}
	if _, ok := registry.Get("conv-b"); !ok {
		t.Error("conv-b should be loaded")
	}
}

func TestRegistryLoadDirectoryNonExistent(t *testing.T) {
	registry := NewRegistry()

	if err := registry.LoadDirectory("/non/existent/path"); err != nil {
		t.Errorf("LoadDirectory() non-existent should not error, got: %v", err)
	}

	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}
}

func TestRegistryReload(t *testing.T) {
	tmpDir := t.TempDir()

	convFile := filepath.Join(tmpDir, "test.yaml")
	yamlContent := `
name: "test"
version: "1.0.0"
description: "Original"
keywords:
  chapter: "Chương"
  article: "Điều"
  clause: "Khoản"
  point: "Điểm"
patterns:
  chapter: '^Chương\s+(\d+)'
  article: '^Điều\s+(\d+)'
  clause: '^(\d+)\.\s*(.*)'
  point: '^([a-z])\)\s*(.*)'
`
	if err := os.WriteFile(convFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	registry, err := NewRegistryWithDirectory(tmpDir)
	if err != nil {
		t.Fatalf("NewRegistryWithDirectory() error = %v", err)
	}

	conv, _ := registry.Get("test")
	if conv.Description != "Original" {
		t.Errorf("Description = %q, want %q", conv.Description, "Original")
	}

	// Update the file and reload
	yamlContent = `
name: "test"
version: "2.0.0"
description: "Updated"
keywords:
  chapter: "Chương"
  article: "Điều"
  clause: "Khoản"
  point: "Điểm"
patterns:
  chapter: '^Chương\s+(\d+)'
  article: '^Điều\s+(\d+)'
  clause: '^(\d+)\.\s*(.*)'
  point: '^([a-z])\)\s*(.*)'
`
	if err := os.WriteFile(convFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := registry.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	conv, _ = registry.Get("test")
	if conv.Description != "Updated" {
		t.Errorf("Description after Reload() = %q, want %q", conv.Description, "Updated")
	}

	if _, ok := registry.Get(DefaultName); !ok {
		t.Error("built-in convention should survive Reload()")
	}
}
