package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestRunMissingCommand(t *testing.T) {
	err := run(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "missing command") {
		t.Fatalf("expected missing command error, got %v", err)
	}
}

func TestRunInitMemory(t *testing.T) {
	if err := run(context.Background(), []string{"init", "-store", "memory"}); err != nil {
		t.Fatalf("init: %v", err)
	}
}

func TestRunImportRequiresNetwork(t *testing.T) {
	err := run(context.Background(), []string{"import", "-store", "memory"})
	if err == nil || !strings.Contains(err.Error(), "-network") {
		t.Fatalf("expected flag usage error, got %v", err)
	}
}

func TestRunAttributeRequiresNetworkID(t *testing.T) {
	err := run(context.Background(), []string{"attribute", "-store", "memory", "-sample", "1,2"})
	if err == nil || !strings.Contains(err.Error(), "-network-id") {
		t.Fatalf("expected flag usage error, got %v", err)
	}
}

func TestRunImportMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.json")
	network := `{"name": "toy", "layers": [{"activation": "identity", "weights": [[2, -1]], "bias": [0.5]}]}`
	if err := os.WriteFile(path, []byte(network), 0o644); err != nil {
		t.Fatalf("write network: %v", err)
	}

	if err := run(context.Background(), []string{"import", "-store", "memory", "-network", path, "-id", "net-1"}); err != nil {
		t.Fatalf("import: %v", err)
	}
}
