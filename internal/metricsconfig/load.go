package metricsconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kargones/hanadb-exporter/internal/pkg/logging"
	"gopkg.in/yaml.v3"
)

// rawQuery — текст запроса и его необработанное JSON описание в порядке появления.
type rawQuery struct {
	text string
	doc  []byte
}

// queryDocument и metricDocument — форма описания запроса в файле.
// Указатели нужны для значений по умолчанию enabled=true.
type queryDocument struct {
	Enabled *bool            `json:"enabled"`
	Metrics []metricDocument `json:"metrics"`
}

type metricDocument struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	Value       string   `json:"value"`
	Unit        string   `json:"unit"`
	Type        string   `json:"type"`
	Enabled     *bool    `json:"enabled"`
}

// Load разбирает JSON объект {"<query>": {"enabled": bool, "metrics": [...]}} в Config.
//
// Порядок запросов соответствует порядку ключей. Повторяющийся текст запроса
// не является ошибкой: побеждает последнее описание, позиция остаётся от первого.
// Любая ошибка возвращается как *ConfigError с началом текста запроса.
func Load(payload []byte) (*Config, error) {
	queries, err := splitJSON(payload)
	if err != nil {
		return nil, err
	}
	return build(queries)
}

// LoadFile читает файл определений метрик.
// Расширения .yaml/.yml разбираются как YAML той же структуры, остальные — как JSON.
func LoadFile(path string, logger logging.Logger) (*Config, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger.Info("загрузка определений метрик", "file", path)

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("чтение %s: %w", path, err)}
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = LoadYAML(payload)
	default:
		cfg, err = Load(payload)
	}
	if err != nil {
		logger.Error("некорректный файл определений метрик", "file", path, "error", err.Error())
		return nil, err
	}

	logger.Info("определения метрик загружены", "file", path, "queries", cfg.Len())
	return cfg, nil
}

// LoadYAML разбирает YAML документ той же структуры, что и JSON для Load.
func LoadYAML(payload []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, &ConfigError{Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, &ConfigError{Err: ErrNotMapping}
	}

	root := doc.Content[0]
	queries := make([]rawQuery, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		text := root.Content[i].Value

		var value any
		if err := root.Content[i+1].Decode(&value); err != nil {
			return nil, &ConfigError{Query: textPrefix(text), Err: err}
		}
		doc, err := json.Marshal(value)
		if err != nil {
			return nil, &ConfigError{Query: textPrefix(text), Err: err}
		}
		queries = append(queries, rawQuery{text: text, doc: doc})
	}
	return build(queries)
}

// splitJSON потоково читает верхний объект, сохраняя порядок ключей.
func splitJSON(payload []byte) ([]rawQuery, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))

	tok, err := dec.Token()
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("невалидный JSON: %w", err)}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &ConfigError{Err: ErrNotMapping}
	}

	var queries []rawQuery
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("невалидный JSON: %w", err)}
		}
		text, _ := tok.(string)

		var doc json.RawMessage
		if err := dec.Decode(&doc); err != nil {
			return nil, &ConfigError{Query: textPrefix(text), Err: fmt.Errorf("невалидный JSON: %w", err)}
		}
		queries = append(queries, rawQuery{text: text, doc: doc})
	}

	if _, err := dec.Token(); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("невалидный JSON: %w", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ConfigError{Err: errors.New("невалидный JSON: данные после закрывающей скобки")}
	}
	return queries, nil
}

// build собирает Config, применяя правило "последний побеждает" для дубликатов.
func build(raw []rawQuery) (*Config, error) {
	cfg := &Config{queries: make([]Query, 0, len(raw))}
	positions := make(map[string]int, len(raw))

	for _, r := range raw {
		q, err := parseQuery(r.text, r.doc)
		if err != nil {
			return nil, err
		}
		if pos, ok := positions[q.Text]; ok {
			cfg.queries[pos] = q
			continue
		}
		positions[q.Text] = len(cfg.queries)
		cfg.queries = append(cfg.queries, q)
	}
	return cfg, nil
}

func parseQuery(text string, doc []byte) (Query, error) {
	if err := validateQueryDocument(doc); err != nil {
		return Query{}, &ConfigError{Query: textPrefix(text), Err: err}
	}

	var qd queryDocument
	if err := json.Unmarshal(doc, &qd); err != nil {
		return Query{}, &ConfigError{Query: textPrefix(text), Err: err}
	}

	q := Query{
		Text:    text,
		Enabled: boolOrTrue(qd.Enabled),
		Metrics: make([]Metric, 0, len(qd.Metrics)),
	}
	for _, md := range qd.Metrics {
		q.Metrics = append(q.Metrics, Metric{
			Name:        md.Name,
			Description: md.Description,
			Labels:      md.Labels,
			Value:       md.Value,
			Unit:        md.Unit,
			Type:        MetricType(md.Type),
			Enabled:     boolOrTrue(md.Enabled),
		})
	}
	return q, nil
}

func boolOrTrue(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
