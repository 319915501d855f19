package scoring

import (
	"testing"

	"github.com/dytfght/m365-license-optimizer-sub001/internal/app/ds"
)

func TestScoreNilRecordIsZeroVector(t *testing.T) {
	sig := Score(nil)
	if sig != (UsageSignal{}) {
		t.Fatalf("nil record must score zero on every dimension, got %+v", sig)
	}
}

func TestScoreZeroCountersIsZeroVector(t *testing.T) {
	sig := Score(&ds.UsageRecord{})
	if sig != (UsageSignal{}) {
		t.Fatalf("zero counters must score zero on every dimension, got %+v", sig)
	}
}

func TestScoreReferenceVectors(t *testing.T) {
	tests := []struct {
		name string
		rec  ds.UsageRecord
		want UsageSignal
	}{
		{
			name: "exchange at normalization volume",
			rec:  ds.UsageRecord{EmailsSent: 50, EmailsReceived: 50},
			want: UsageSignal{Exchange: 1.0},
		},
		{
			name: "onedrive half volume",
			rec:  ds.UsageRecord{OneDriveFilesTouched: 25},
			want: UsageSignal{OneDrive: 0.5},
		},
		{
			name: "sharepoint half volume",
			rec:  ds.UsageRecord{SharePointFilesTouched: 25},
			want: UsageSignal{SharePoint: 0.5},
		},
		{
			name: "teams chats plus weighted meetings",
			rec:  ds.UsageRecord{TeamsChatMessages: 50, TeamsMeetingsAttended: 5},
			want: UsageSignal{Teams: 1.0},
		},
		{
			name: "office half volume",
			rec:  ds.UsageRecord{OfficeFilesTouched: 15},
			want: UsageSignal{Office: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(&tt.rec)
			if got != tt.want {
				t.Errorf("Score() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreIsNotClampedAboveOne(t *testing.T) {
	rec := ds.UsageRecord{EmailsSent: 150, EmailsReceived: 50}
	sig := Score(&rec)
	if sig.Exchange != 2.0 {
		t.Fatalf("exchange score must stay an open-ended ratio, got %v want 2.0", sig.Exchange)
	}
}

func TestAllBelow(t *testing.T) {
	quiet := UsageSignal{Exchange: 0.04, OneDrive: 0.01, Teams: 0.049}
	if !quiet.AllBelow(0.05) {
		t.Error("signal below threshold on every dimension must report AllBelow")
	}

	active := UsageSignal{Exchange: 0.04, Office: 0.05}
	if active.AllBelow(0.05) {
		t.Error("a single dimension at the threshold must defeat AllBelow")
	}
}
