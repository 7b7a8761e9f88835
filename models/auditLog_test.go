package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewAuditRecord_CreateHasOnlyAfter(t *testing.T) {
	logger := NewAuditLogger(nil, "tenant-1", "user-1")

	record, err := logger.newAuditRecord(AuditActionCreate, "MaterialLineItem", "mat-1",
		AuditChanges{After: map[string]string{"description": "2x4 studs"}}, nil)
	if err != nil {
		t.Fatalf("newAuditRecord error: %v", err)
	}

	var changes map[string]json.RawMessage
	if err := json.Unmarshal([]byte(record.Changes), &changes); err != nil {
		t.Fatalf("changes is not valid JSON: %v", err)
	}
	if _, ok := changes["after"]; !ok {
		t.Fatal("CREATE record must carry an after snapshot")
	}
	if _, ok := changes["before"]; ok {
		t.Fatal("CREATE record must not carry a before snapshot")
	}
	if record.UserId == nil || *record.UserId != "user-1" {
		t.Fatalf("expected user_id user-1, got %v", record.UserId)
	}
}

func TestNewAuditRecord_DeleteHasOnlyBefore(t *testing.T) {
	logger := NewAuditLogger(nil, "tenant-1", "")

	record, err := logger.newAuditRecord(AuditActionDelete, "ScheduleMilestone", "ms-1",
		AuditChanges{Before: map[string]string{"phase": "FRAMING"}}, nil)
	if err != nil {
		t.Fatalf("newAuditRecord error: %v", err)
	}

	var changes map[string]json.RawMessage
	if err := json.Unmarshal([]byte(record.Changes), &changes); err != nil {
		t.Fatalf("changes is not valid JSON: %v", err)
	}
	if _, ok := changes["before"]; !ok {
		t.Fatal("DELETE record must carry a before snapshot")
	}
	if _, ok := changes["after"]; ok {
		t.Fatal("DELETE record must not carry an after snapshot")
	}
	if record.UserId != nil {
		t.Fatalf("blank actor must store null user_id, got %v", *record.UserId)
	}
}

func TestNewAuditRecord_UpdateSnapshotsAreDetached(t *testing.T) {
	logger := NewAuditLogger(nil, "tenant-1", "user-1")

	before := map[string]string{"description": "old"}
	after := map[string]string{"description": "new"}
	record, err := logger.newAuditRecord(AuditActionUpdate, "MaterialLineItem", "mat-1",
		AuditChanges{Before: before, After: after}, nil)
	if err != nil {
		t.Fatalf("newAuditRecord error: %v", err)
	}

	// Mutating the source maps after logging must not alter the stored record.
	before["description"] = "mutated"
	after["description"] = "mutated"

	if !strings.Contains(record.Changes, `"old"`) || !strings.Contains(record.Changes, `"new"`) {
		t.Fatalf("stored snapshots changed after source mutation: %s", record.Changes)
	}
	if strings.Contains(record.Changes, "mutated") {
		t.Fatalf("stored record references the live entity: %s", record.Changes)
	}
}

func TestNewAuditRecord_RequiresTenant(t *testing.T) {
	logger := NewAuditLogger(nil, "", "user-1")
	if _, err := logger.newAuditRecord(AuditActionCreate, "BuildProject", "p-1", AuditChanges{After: "x"}, nil); err == nil {
		t.Fatal("missing tenant id expected error")
	}
}

func TestNewAuditRecord_Metadata(t *testing.T) {
	logger := NewAuditLogger(nil, "tenant-1", "user-1")
	record, err := logger.newAuditRecord(AuditActionRead, "MaterialLineItem", "export",
		AuditChanges{}, map[string]string{"format": "csv"})
	if err != nil {
		t.Fatalf("newAuditRecord error: %v", err)
	}
	if !strings.Contains(record.Metadata, `"format":"csv"`) {
		t.Fatalf("expected metadata to be serialized, got %q", record.Metadata)
	}
}
