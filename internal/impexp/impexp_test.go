package impexp

import (
	"bytes"
	"strings"
	"testing"
	"time"

	apperrors "networth-cli/internal/errors"
	"networth-cli/internal/forecast"
	"networth-cli/internal/models"
)

func sampleDocument() *Document {
	return &Document{
		Profiles: []models.Profile{
			{
				ID:   "p1",
				Name: "personal",
				Assets: []models.Asset{
					{ID: "a1", Name: "ISA", Value: 20000, Return: 7, TaxTreatment: models.TreatmentTaxFree},
				},
				Liabilities: []models.Liability{
					{ID: "l1", Name: "Mortgage", Value: 150000, InterestRate: 4.5, MonthlyPayment: 900},
				},
				Events: []models.Event{
					{Date: time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC), Amount: 50000},
				},
				Tax:  models.TaxSettings{Band: models.BandHigher, DividendAllowance: 500},
				Goal: &models.Goal{Value: 1000000, TargetDate: time.Date(2045, time.January, 1, 0, 0, 0, 0, time.UTC)},
			},
			{ID: "p2", Name: "joint", Tax: models.TaxSettings{Band: models.BandBasic}},
		},
		ActiveProfileID: "p1",
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	doc := sampleDocument()
	data, err := Export(doc)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if IsEncrypted(data) {
		t.Fatal("plain export flagged as encrypted")
	}

	got, err := Import(data, "")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	assertDocumentsEqual(t, doc, got)
}

func TestEncryptedRoundTrip(t *testing.T) {
	doc := sampleDocument()
	data, err := ExportEncrypted(doc, "hunter2")
	if err != nil {
		t.Fatalf("ExportEncrypted: %v", err)
	}
	if !IsEncrypted(data) {
		t.Fatal("encrypted export not flagged as encrypted")
	}
	if bytes.Contains(data, []byte("Mortgage")) {
		t.Fatal("ciphertext leaks plaintext content")
	}

	got, err := Import(data, "hunter2")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	assertDocumentsEqual(t, doc, got)
}

func TestWrongPassword(t *testing.T) {
	data, err := ExportEncrypted(sampleDocument(), "correct")
	if err != nil {
		t.Fatalf("ExportEncrypted: %v", err)
	}

	_, err = Import(data, "wrong")
	if err == nil {
		t.Fatal("import with wrong password succeeded")
	}
	if !apperrors.Is(err, apperrors.ErrDecryptFailed) {
		t.Errorf("error = %v, want ErrDecryptFailed", err)
	}
	var importErr *apperrors.ImportError
	if !apperrors.As(err, &importErr) || importErr.Stage != "decrypt" {
		t.Errorf("expected a decrypt-stage import error, got %v", err)
	}
}

func TestMalformedImport(t *testing.T) {
	testCases := []struct {
		name  string
		data  string
		stage string
	}{
		{"not json", "this is not json", "parse"},
		{"truncated encrypted", "NETWORTH1:AAAA", "decrypt"},
		{"bad base64", "NETWORTH1:!!!not base64!!!", "decrypt"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Import([]byte(tc.data), "pw")
			if err == nil {
				t.Fatal("malformed import succeeded")
			}
			var importErr *apperrors.ImportError
			if !apperrors.As(err, &importErr) {
				t.Fatalf("error = %v, want ImportError", err)
			}
			if importErr.Stage != tc.stage {
				t.Errorf("stage = %s, want %s", importErr.Stage, tc.stage)
			}
		})
	}
}

func TestImportNormalizesProfiles(t *testing.T) {
	raw := `{"profiles":[{"id":"p1","name":"x","assets":[{"id":"a1","name":"y","value":100,"return":5,"taxTreatment":"offshore","depositFrequency":"weekly"}],"taxSettings":{"band":"bogus"}}]}`
	doc, err := Import([]byte(raw), "")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	a := doc.Profiles[0].Assets[0]
	if a.TaxTreatment != models.TreatmentTaxFree {
		t.Errorf("treatment = %s, want tax-free", a.TaxTreatment)
	}
	if a.DepositFrequency != models.FrequencyNone {
		t.Errorf("frequency = %s, want none", a.DepositFrequency)
	}
	if doc.Profiles[0].Tax.Band != models.BandBasic {
		t.Errorf("band = %s, want basic", doc.Profiles[0].Tax.Band)
	}
}

func TestWriteForecastCSV(t *testing.T) {
	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	snap := &models.Snapshot{
		Assets: []models.Asset{{ID: "a1", Value: 1000, StartDate: now.AddDate(-1, 0, 0), Return: 5}},
	}
	engine := forecast.New(snap, forecast.WithNow(now))
	set := engine.BuildScenarios(1, forecast.Options{})

	var buf bytes.Buffer
	if err := WriteForecastCSV(&buf, set, ""); err != nil {
		t.Fatalf("WriteForecastCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 14 { // header + 13 monthly rows
		t.Fatalf("got %d lines, want 14", len(lines))
	}
	if header := strings.TrimSpace(lines[0]); header != "date,low,base,high" {
		t.Errorf("header = %q", header)
	}
	if !strings.HasPrefix(lines[1], "2026-01-15,") {
		t.Errorf("first row = %q, want it to start with 2026-01-15", lines[1])
	}
}

func assertDocumentsEqual(t *testing.T, want, got *Document) {
	t.Helper()
	if got.ActiveProfileID != want.ActiveProfileID {
		t.Errorf("active profile = %q, want %q", got.ActiveProfileID, want.ActiveProfileID)
	}
	if len(got.Profiles) != len(want.Profiles) {
		t.Fatalf("profile count = %d, want %d", len(got.Profiles), len(want.Profiles))
	}
	for i := range want.Profiles {
		w, g := want.Profiles[i], got.Profiles[i]
		if g.ID != w.ID || g.Name != w.Name {
			t.Errorf("profile %d identity mismatch: %s/%s vs %s/%s", i, g.ID, g.Name, w.ID, w.Name)
		}
		if len(g.Assets) != len(w.Assets) || len(g.Liabilities) != len(w.Liabilities) || len(g.Events) != len(w.Events) {
			t.Errorf("profile %d child counts differ", i)
		}
		if (g.Goal == nil) != (w.Goal == nil) {
			t.Errorf("profile %d goal presence differs", i)
		}
		if g.Goal != nil && w.Goal != nil && g.Goal.Value != w.Goal.Value {
			t.Errorf("profile %d goal value = %v, want %v", i, g.Goal.Value, w.Goal.Value)
		}
		if g.Tax.Band != w.Tax.Band {
			t.Errorf("profile %d band = %s, want %s", i, g.Tax.Band, w.Tax.Band)
		}
	}
}
