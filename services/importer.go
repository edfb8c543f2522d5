package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"vocab-learn-system/models"
)

// BatchPolicy decides what happens to a batch that parsed with line errors.
type BatchPolicy int

const (
	// AllOrNothing rejects the whole batch when any line fails.
	AllOrNothing BatchPolicy = iota
	// PartialAccept keeps the valid drafts and reports the errors alongside.
	PartialAccept
)

// LineError describes one rejected input line.
type LineError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e LineError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type ImportService struct {
	DB         *gorm.DB
	Vocabulary *VocabularyService

	// Historically pasted text was all-or-nothing while file uploads were
	// partial-accept. Kept configurable per input kind.
	TextPolicy BatchPolicy
	CSVPolicy  BatchPolicy
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{
		DB:         db,
		Vocabulary: NewVocabularyService(db),
		TextPolicy: AllOrNothing,
		CSVPolicy:  PartialAccept,
	}
}

// ParseBulkText parses pipe-delimited lines:
//
//	word | meaning | category
//	word | meaning | example | category
//
// Fields are trimmed; the category must be whitelisted.
func (s *ImportService) ParseBulkText(raw string) ([]models.VocabularyEntry, []LineError) {
	var drafts []models.VocabularyEntry
	var errs []LineError

	for i, line := range strings.Split(raw, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}

		draft, lineErr := draftFromFields(fields, lineNo)
		if lineErr != nil {
			errs = append(errs, *lineErr)
			continue
		}
		drafts = append(drafts, *draft)
	}

	return applyBatchPolicy(drafts, errs, s.TextPolicy)
}

// ParseCSV parses comma-separated input. An optional header row is detected
// by checking whether the lowercased first line mentions "word". Quoted
// fields have their double quotes stripped.
func (s *ImportService) ParseCSV(raw string) ([]models.VocabularyEntry, []LineError) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var drafts []models.VocabularyEntry
	var errs []LineError

	lineNo := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			errs = append(errs, LineError{Line: lineNo, Message: "invalid format"})
			continue
		}

		for j := range record {
			record[j] = strings.Trim(strings.TrimSpace(record[j]), `"`)
		}

		// Header row, e.g. "word,meaning,category"
		if lineNo == 1 && strings.Contains(strings.ToLower(strings.Join(record, ",")), "word") {
			continue
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}

		draft, lineErr := draftFromFields(record, lineNo)
		if lineErr != nil {
			errs = append(errs, *lineErr)
			continue
		}
		drafts = append(drafts, *draft)
	}

	return applyBatchPolicy(drafts, errs, s.CSVPolicy)
}

// ParseXLSX reads the first sheet of an uploaded workbook using the same
// column semantics as the CSV format.
func (s *ImportService) ParseXLSX(r io.Reader) ([]models.VocabularyEntry, []LineError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var drafts []models.VocabularyEntry
	var errs []LineError

	for i, row := range rows {
		lineNo := i + 1
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}
		if lineNo == 1 && strings.Contains(strings.ToLower(strings.Join(row, ",")), "word") {
			continue
		}

		draft, lineErr := draftFromFields(row, lineNo)
		if lineErr != nil {
			errs = append(errs, *lineErr)
			continue
		}
		drafts = append(drafts, *draft)
	}

	drafts, errs = applyBatchPolicy(drafts, errs, s.CSVPolicy)
	return drafts, errs, nil
}

// draftFromFields maps a trimmed field slice to a draft entry.
// 3 fields: word, meaning, category. 4 fields: word, meaning, example, category.
func draftFromFields(fields []string, lineNo int) (*models.VocabularyEntry, *LineError) {
	var draft models.VocabularyEntry

	switch len(fields) {
	case 3:
		draft = models.VocabularyEntry{Word: fields[0], Meaning: fields[1], Category: fields[2]}
	case 4:
		draft = models.VocabularyEntry{Word: fields[0], Meaning: fields[1], ExampleSentence: fields[2], Category: fields[3]}
	default:
		return nil, &LineError{Line: lineNo, Message: "invalid format"}
	}

	if draft.Word == "" || draft.Meaning == "" {
		return nil, &LineError{Line: lineNo, Message: "invalid format"}
	}
	if !models.IsValidCategory(draft.Category) {
		return nil, &LineError{Line: lineNo, Message: fmt.Sprintf("invalid category %q", draft.Category)}
	}
	return &draft, nil
}

func applyBatchPolicy(drafts []models.VocabularyEntry, errs []LineError, policy BatchPolicy) ([]models.VocabularyEntry, []LineError) {
	if policy == AllOrNothing && len(errs) > 0 {
		return nil, errs
	}
	return drafts, errs
}

// ImportDrafts submits each draft to the catalog individually. A failed
// create is logged and does not abort the remaining submissions. Returns the
// number created out of the number attempted.
func (s *ImportService) ImportDrafts(drafts []models.VocabularyEntry) (created, attempted int) {
	attempted = len(drafts)
	for i := range drafts {
		entry := drafts[i]
		if err := s.Vocabulary.Create(&entry); err != nil {
			log.Printf("⚠️ [IMPORT] failed to create %q: %v", entry.Word, err)
			continue
		}
		created++
	}
	return created, attempted
}
