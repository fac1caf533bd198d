package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

const ddtPrompt = `Sei un assistente che estrae dati da documenti di trasporto (DDT).
Analizza il seguente testo estratto da un DDT e restituisci SOLO un oggetto JSON con i seguenti campi (se presenti nel testo, altrimenti omettili):

{
  "committente": "nome del mittente/committente che affida la spedizione",
  "destinatario": {
    "ragioneSociale": "nome destinatario",
    "indirizzo": "via e numero civico",
    "cap": "codice postale (5 cifre)",
    "citta": "città",
    "provincia": "sigla provincia (2 lettere maiuscole)"
  },
  "dataDDT": "data DDT in formato YYYY-MM-DD",
  "numeroDDT": "numero documento",
  "colli": numero_colli (numero intero),
  "peso": peso_kg (numero decimale),
  "contrassegno": importo_contrassegno (numero decimale, se presente)
}

Regole importanti:
- Restituisci SOLO il JSON, senza testo aggiuntivo
- Se un campo non è presente nel testo, omettilo dal JSON
- Per le date, converti sempre in formato YYYY-MM-DD
- Per CAP, estrai solo le 5 cifre
- Per provincia, estrai solo la sigla di 2 lettere (es: BG, MI, CO)

Testo del DDT:
%s`

// FieldExtractor implements structured DDT field extraction on top of the
// chat client. Model output is parsed leniently and normalized before it
// reaches the domain.
type FieldExtractor struct {
	client *Client
}

func NewFieldExtractor(client *Client) *FieldExtractor {
	return &FieldExtractor{client: client}
}

func (e *FieldExtractor) ExtractFields(ctx context.Context, pageText string) (domain.DDTData, error) {
	content, err := e.client.completeJSON(ctx, fmt.Sprintf(ddtPrompt, pageText))
	if err != nil {
		return domain.DDTData{}, domain.WrapError(domain.ErrExtraction, "extract ddt fields", err)
	}
	data, err := parseDDTResponse(content)
	if err != nil {
		return domain.DDTData{}, domain.WrapError(domain.ErrExtraction, "parse ddt fields", err)
	}
	return data, nil
}

// rawDDT tolerates the shapes models actually produce: numbers as strings,
// null members, stray prose around the JSON object.
type rawDDT struct {
	Committente  string           `json:"committente"`
	Destinatario *rawDestinatario `json:"destinatario"`
	DataDDT      string           `json:"dataDDT"`
	NumeroDDT    string           `json:"numeroDDT"`
	Colli        json.RawMessage  `json:"colli"`
	Peso         json.RawMessage  `json:"peso"`
	Contrassegno json.RawMessage  `json:"contrassegno"`
}

type rawDestinatario struct {
	RagioneSociale string `json:"ragioneSociale"`
	Indirizzo      string `json:"indirizzo"`
	CAP            string `json:"cap"`
	Citta          string `json:"citta"`
	Provincia      string `json:"provincia"`
}

func parseDDTResponse(content string) (domain.DDTData, error) {
	var raw rawDDT
	if err := json.Unmarshal([]byte(extractJSONObject(content)), &raw); err != nil {
		return domain.DDTData{}, fmt.Errorf("unmarshal model output: %w", err)
	}

	data := domain.DDTData{
		Committente: strings.TrimSpace(raw.Committente),
		DataDDT:     normalizeDate(raw.DataDDT),
		NumeroDDT:   strings.TrimSpace(raw.NumeroDDT),
	}

	if n, ok := coerceInt(raw.Colli); ok {
		data.Colli = &n
	}
	if f, ok := coerceFloat(raw.Peso); ok {
		data.Peso = &f
	}
	if f, ok := coerceFloat(raw.Contrassegno); ok {
		data.Contrassegno = &f
	}

	if raw.Destinatario != nil {
		dest := domain.DestinatarioEstratto{
			RagioneSociale: strings.TrimSpace(raw.Destinatario.RagioneSociale),
			Indirizzo:      strings.TrimSpace(raw.Destinatario.Indirizzo),
			CAP:            normalizeCAP(raw.Destinatario.CAP),
			Citta:          strings.TrimSpace(raw.Destinatario.Citta),
			Provincia:      normalizeProvincia(raw.Destinatario.Provincia),
		}
		if dest != (domain.DestinatarioEstratto{}) {
			data.Destinatario = &dest
		}
	}
	return data, nil
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

func coerceInt(raw json.RawMessage) (int, bool) {
	f, ok := coerceFloat(raw)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func coerceFloat(raw json.RawMessage) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	s = strings.Trim(s, `"`)
	// Italian documents write decimals with a comma.
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var (
	isoDateRe     = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	italianDateRe = regexp.MustCompile(`(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})`)
	capRe         = regexp.MustCompile(`\d{5}`)
	provinciaRe   = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if m := isoDateRe.FindString(s); m != "" {
		return m
	}
	if m := italianDateRe.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))
	}
	return ""
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func normalizeCAP(s string) string {
	return capRe.FindString(s)
}

func normalizeProvincia(s string) string {
	s = strings.TrimSpace(s)
	if provinciaRe.MatchString(s) {
		return strings.ToUpper(s)
	}
	return ""
}
