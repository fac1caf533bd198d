package openai

import (
	"testing"
)

func TestParseDDTResponseFullDocument(t *testing.T) {
	content := `{
		"committente": "Cati S.p.A.",
		"destinatario": {
			"ragioneSociale": "Delta Store",
			"indirizzo": "Via Roma 12",
			"cap": "24100",
			"citta": "Bergamo",
			"provincia": "BG"
		},
		"dataDDT": "2026-08-20",
		"numeroDDT": "DDT-42",
		"colli": 3,
		"peso": 120.5,
		"contrassegno": 45.9
	}`

	data, err := parseDDTResponse(content)
	if err != nil {
		t.Fatalf("parseDDTResponse() error = %v", err)
	}
	if data.Committente != "Cati S.p.A." || data.NumeroDDT != "DDT-42" {
		t.Fatalf("unexpected data: %+v", data)
	}
	if data.Destinatario == nil || data.Destinatario.Citta != "Bergamo" {
		t.Fatalf("unexpected destinatario: %+v", data.Destinatario)
	}
	if data.Colli == nil || *data.Colli != 3 {
		t.Fatalf("unexpected colli: %v", data.Colli)
	}
	if data.Peso == nil || *data.Peso != 120.5 {
		t.Fatalf("unexpected peso: %v", data.Peso)
	}
	if data.Contrassegno == nil || *data.Contrassegno != 45.9 {
		t.Fatalf("unexpected contrassegno: %v", data.Contrassegno)
	}
}

func TestParseDDTResponseToleratesProseAroundJSON(t *testing.T) {
	content := "Ecco i dati estratti:\n{\"committente\": \"Logitex\"}\nSpero sia utile."

	data, err := parseDDTResponse(content)
	if err != nil {
		t.Fatalf("parseDDTResponse() error = %v", err)
	}
	if data.Committente != "Logitex" {
		t.Fatalf("unexpected committente: %q", data.Committente)
	}
}

func TestParseDDTResponseCoercesStringNumbers(t *testing.T) {
	content := `{"colli": "4", "peso": "12,5", "contrassegno": null}`

	data, err := parseDDTResponse(content)
	if err != nil {
		t.Fatalf("parseDDTResponse() error = %v", err)
	}
	if data.Colli == nil || *data.Colli != 4 {
		t.Fatalf("unexpected colli: %v", data.Colli)
	}
	if data.Peso == nil || *data.Peso != 12.5 {
		t.Fatalf("unexpected peso: %v", data.Peso)
	}
	if data.Contrassegno != nil {
		t.Fatalf("null contrassegno must stay absent, got %v", *data.Contrassegno)
	}
}

func TestParseDDTResponseEmptyObjectIsEmptyData(t *testing.T) {
	data, err := parseDDTResponse(`{}`)
	if err != nil {
		t.Fatalf("parseDDTResponse() error = %v", err)
	}
	if !data.Empty() {
		t.Fatalf("expected empty data, got %+v", data)
	}
}

func TestParseDDTResponseRejectsNonJSON(t *testing.T) {
	if _, err := parseDDTResponse("nessun dato trovato"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNormalizeDateAcceptsItalianFormats(t *testing.T) {
	cases := map[string]string{
		"2026-08-20":      "2026-08-20",
		"20/08/2026":      "2026-08-20",
		"5/8/2026":        "2026-08-05",
		"20.08.2026":      "2026-08-20",
		"del 20/08/2026":  "2026-08-20",
		"non disponibile": "",
	}
	for in, want := range cases {
		if got := normalizeDate(in); got != want {
			t.Fatalf("normalizeDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeCAPAndProvincia(t *testing.T) {
	if got := normalizeCAP("CAP 24100 BG"); got != "24100" {
		t.Fatalf("normalizeCAP = %q", got)
	}
	if got := normalizeCAP("n/d"); got != "" {
		t.Fatalf("normalizeCAP = %q", got)
	}
	if got := normalizeProvincia("bg"); got != "BG" {
		t.Fatalf("normalizeProvincia = %q", got)
	}
	if got := normalizeProvincia("Bergamo"); got != "" {
		t.Fatalf("normalizeProvincia = %q", got)
	}
}
