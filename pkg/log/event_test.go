package log

import (
	"bytes"
	"testing"

	"github.com/ptplink/ptplink-go/pkg/wire"
)

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirectionNone, "NONE"},
		{DirectionOut, "OUT"},
		{DirectionIn, "IN"},
		{Direction(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.dir.String()
		if got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerTransport, "TRANSPORT"},
		{LayerContainer, "CONTAINER"},
		{LayerTransaction, "TRANSACTION"},
		{LayerSession, "SESSION"},
		{Layer(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.layer.String()
		if got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryMessage, "MESSAGE"},
		{CategoryState, "STATE"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestDirectionValues(t *testing.T) {
	// Verify explicit values for capture file stability
	if DirectionNone != 0 {
		t.Errorf("DirectionNone = %d, want 0", DirectionNone)
	}
	if DirectionOut != 1 {
		t.Errorf("DirectionOut = %d, want 1", DirectionOut)
	}
	if DirectionIn != 2 {
		t.Errorf("DirectionIn = %d, want 2", DirectionIn)
	}
}

func TestLayerValues(t *testing.T) {
	// Verify explicit values for capture file stability
	if LayerTransport != 0 {
		t.Errorf("LayerTransport = %d, want 0", LayerTransport)
	}
	if LayerContainer != 1 {
		t.Errorf("LayerContainer = %d, want 1", LayerContainer)
	}
	if LayerTransaction != 2 {
		t.Errorf("LayerTransaction = %d, want 2", LayerTransaction)
	}
	if LayerSession != 3 {
		t.Errorf("LayerSession = %d, want 3", LayerSession)
	}
}

func TestCategoryValues(t *testing.T) {
	// Verify explicit values for capture file stability
	if CategoryMessage != 0 {
		t.Errorf("CategoryMessage = %d, want 0", CategoryMessage)
	}
	if CategoryState != 1 {
		t.Errorf("CategoryState = %d, want 1", CategoryState)
	}
	if CategoryError != 2 {
		t.Errorf("CategoryError = %d, want 2", CategoryError)
	}
}

func TestContainerEventFields(t *testing.T) {
	payload := []byte{0xAA, 0xBB, 0xCC}
	event := ContainerEvent("link-1", DirectionOut, wire.KindCommand, uint16(wire.OpGetDeviceInfo), 7, 12, payload)

	if event.LinkID != "link-1" {
		t.Errorf("LinkID = %q, want %q", event.LinkID, "link-1")
	}
	if event.Direction != DirectionOut {
		t.Errorf("Direction = %v, want %v", event.Direction, DirectionOut)
	}
	if event.Layer != LayerContainer {
		t.Errorf("Layer = %v, want %v", event.Layer, LayerContainer)
	}
	if event.Category != CategoryMessage {
		t.Errorf("Category = %v, want %v", event.Category, CategoryMessage)
	}
	if event.Kind != wire.KindCommand {
		t.Errorf("Kind = %v, want %v", event.Kind, wire.KindCommand)
	}
	if event.Code != uint16(wire.OpGetDeviceInfo) {
		t.Errorf("Code = 0x%04X, want 0x%04X", event.Code, uint16(wire.OpGetDeviceInfo))
	}
	if event.TID != 7 {
		t.Errorf("TID = %d, want 7", event.TID)
	}
	if event.Size != 12 {
		t.Errorf("Size = %d, want 12", event.Size)
	}
	if !bytes.Equal(event.Payload, payload) {
		t.Errorf("Payload = %v, want %v", event.Payload, payload)
	}
	if event.Truncated {
		t.Error("Truncated = true, want false")
	}
	if event.Time.IsZero() {
		t.Error("Time is zero")
	}
}

func TestContainerEventCopiesPayload(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	event := ContainerEvent("link-1", DirectionIn, wire.KindData, 0x1001, 1, 16, payload)

	// Mutating the caller's slice must not change the captured copy
	payload[0] = 0xFF

	if event.Payload[0] != 1 {
		t.Errorf("Payload[0] = %d, want 1 (payload was aliased, not copied)", event.Payload[0])
	}
}

func TestContainerEventTruncatesPayload(t *testing.T) {
	payload := make([]byte, MaxPayloadCapture+100)
	for i := range payload {
		payload[i] = byte(i)
	}

	event := ContainerEvent("link-1", DirectionIn, wire.KindData, 0x1009, 3, len(payload)+12, payload)

	if len(event.Payload) != MaxPayloadCapture {
		t.Errorf("len(Payload) = %d, want %d", len(event.Payload), MaxPayloadCapture)
	}
	if !event.Truncated {
		t.Error("Truncated = false, want true")
	}
	// Size still reports the full transfer
	if event.Size != len(payload)+12 {
		t.Errorf("Size = %d, want %d", event.Size, len(payload)+12)
	}
	if !bytes.Equal(event.Payload, payload[:MaxPayloadCapture]) {
		t.Error("truncated payload does not match the payload prefix")
	}
}

func TestContainerEventEmptyPayload(t *testing.T) {
	event := ContainerEvent("link-1", DirectionOut, wire.KindCommand, 0x1002, 2, 12, nil)

	if event.Payload != nil {
		t.Errorf("Payload = %v, want nil", event.Payload)
	}
	if event.Truncated {
		t.Error("Truncated = true, want false")
	}
}

func TestTransactionEventFields(t *testing.T) {
	params := []uint32{0x00010001, 0xFFFFFFFF}
	event := TransactionEvent("link-2", DirectionOut, wire.OpGetObjectHandles, 42, params, 260)

	if event.Layer != LayerTransaction {
		t.Errorf("Layer = %v, want %v", event.Layer, LayerTransaction)
	}
	if event.Code != uint16(wire.OpGetObjectHandles) {
		t.Errorf("Code = 0x%04X, want 0x%04X", event.Code, uint16(wire.OpGetObjectHandles))
	}
	if event.TID != 42 {
		t.Errorf("TID = %d, want 42", event.TID)
	}
	if len(event.Params) != 2 || event.Params[0] != 0x00010001 || event.Params[1] != 0xFFFFFFFF {
		t.Errorf("Params = %v, want %v", event.Params, params)
	}
	if event.Size != 260 {
		t.Errorf("Size = %d, want 260", event.Size)
	}

	// Params must be copied, not aliased
	params[0] = 0
	if event.Params[0] != 0x00010001 {
		t.Error("Params were aliased, not copied")
	}
}

func TestStateChangeEventFields(t *testing.T) {
	event := StateChangeEvent("link-3", LayerSession, "CONNECTED", "SESSION_OPEN")

	if event.Layer != LayerSession {
		t.Errorf("Layer = %v, want %v", event.Layer, LayerSession)
	}
	if event.Category != CategoryState {
		t.Errorf("Category = %v, want %v", event.Category, CategoryState)
	}
	if event.Direction != DirectionNone {
		t.Errorf("Direction = %v, want %v", event.Direction, DirectionNone)
	}
	if event.StateFrom != "CONNECTED" {
		t.Errorf("StateFrom = %q, want %q", event.StateFrom, "CONNECTED")
	}
	if event.StateTo != "SESSION_OPEN" {
		t.Errorf("StateTo = %q, want %q", event.StateTo, "SESSION_OPEN")
	}
}

func TestErrorEventFields(t *testing.T) {
	event := ErrorEvent("link-4", LayerContainer, "transaction ID mismatch: got 5, want 4")

	if event.Layer != LayerContainer {
		t.Errorf("Layer = %v, want %v", event.Layer, LayerContainer)
	}
	if event.Category != CategoryError {
		t.Errorf("Category = %v, want %v", event.Category, CategoryError)
	}
	if event.Detail != "transaction ID mismatch: got 5, want 4" {
		t.Errorf("Detail = %q", event.Detail)
	}
}
