package ner

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/daulet/tokenizers"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/varalys/piiguard/internal/types"
)

const (
	tokenizerFile = "tokenizer.json"
	configFile    = "config.json"
	weightsFile   = "model.onnx"
)

// EnvSharedLibrary points at the onnxruntime shared library when it is not on
// the default loader path.
const EnvSharedLibrary = "PIIGUARD_ONNXRUNTIME_LIB"

var (
	ortOnce sync.Once
	ortErr  error
)

func initRuntime() error {
	ortOnce.Do(func() {
		if p := os.Getenv(EnvSharedLibrary); p != "" {
			ort.SetSharedLibraryPath(p)
		}
		ortErr = ort.InitializeEnvironment()
	})
	return ortErr
}

// Model is a loaded token-classification model plus its tokenizer. Load it
// once; Predict is safe for concurrent use.
type Model struct {
	dir     string
	tk      *tokenizers.Tokenizer
	session *ort.DynamicAdvancedSession
	labels  []string
}

// Load initializes the model from a local directory. All three artifacts must
// be present; a partial directory is an error and no handle is returned.
func Load(dir string) (*Model, error) {
	for _, name := range []string{tokenizerFile, configFile, weightsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("ner: model artifact %s missing in %s: %w", name, dir, err)
		}
	}
	labels, err := parseLabels(filepath.Join(dir, configFile))
	if err != nil {
		return nil, err
	}
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("ner: onnxruntime init: %w", err)
	}
	tk, err := tokenizers.FromFile(filepath.Join(dir, tokenizerFile))
	if err != nil {
		return nil, fmt.Errorf("ner: load tokenizer: %w", err)
	}
	session, err := ort.NewDynamicAdvancedSession(
		filepath.Join(dir, weightsFile),
		[]string{"input_ids", "attention_mask"},
		[]string{"logits"},
		nil,
	)
	if err != nil {
		tk.Close()
		return nil, fmt.Errorf("ner: open session: %w", err)
	}
	return &Model{dir: dir, tk: tk, session: session, labels: labels}, nil
}

// Close releases the tokenizer and the inference session.
func (m *Model) Close() error {
	if m.tk != nil {
		m.tk.Close()
	}
	if m.session != nil {
		return m.session.Destroy()
	}
	return nil
}

// Dir returns the artifact directory the model was loaded from.
func (m *Model) Dir() string { return m.dir }

// Predict runs the encoder and classification head over text and decodes the
// BIO tag stream into spans tagged with the NER engine identity.
func (m *Model) Predict(text string) ([]types.DetectedSpan, error) {
	if text == "" {
		return nil, nil
	}
	enc := m.tk.EncodeWithOptions(text, true,
		tokenizers.WithReturnOffsets(),
		tokenizers.WithReturnAttentionMask(),
	)
	n := len(enc.IDs)
	if n == 0 {
		return nil, nil
	}

	ids := make([]int64, n)
	mask := make([]int64, n)
	for i, id := range enc.IDs {
		ids[i] = int64(id)
		mask[i] = 1
	}
	if len(enc.AttentionMask) == n {
		for i, v := range enc.AttentionMask {
			mask[i] = int64(v)
		}
	}

	shape := ort.NewShape(1, int64(n))
	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("ner: input tensor: %w", err)
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("ner: mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := m.session.Run([]ort.Value{idsTensor, maskTensor}, outputs); err != nil {
		return nil, fmt.Errorf("ner: inference: %w", err)
	}
	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("ner: unexpected output type %T", outputs[0])
	}
	defer logits.Destroy()

	data := logits.GetData()
	classes := len(m.labels)
	if classes == 0 || len(data) < n*classes {
		return nil, fmt.Errorf("ner: logits shape mismatch: %d values for %d tokens x %d labels", len(data), n, classes)
	}

	dec := newDecoder(text)
	for i := 0; i < n; i++ {
		row := data[i*classes : (i+1)*classes]
		id, prob := argmaxSoftmax(row)
		dec.feed(tagged{
			Label: m.labels[id],
			Score: prob,
			Start: int(enc.Offsets[i][0]),
			End:   int(enc.Offsets[i][1]),
		})
	}
	return dec.flush(), nil
}

// argmaxSoftmax returns the argmax class and its softmax probability.
func argmaxSoftmax(row []float32) (int, float64) {
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	var denom float64
	max := float64(row[best])
	for _, v := range row {
		denom += math.Exp(float64(v) - max)
	}
	return best, 1 / denom
}

// parseLabels reads id2label from the model config and returns labels indexed
// by class id.
func parseLabels(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ner: read config: %w", err)
	}
	var cfg struct {
		ID2Label map[string]string `json:"id2label"`
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("ner: parse config: %w", err)
	}
	if len(cfg.ID2Label) == 0 {
		return nil, fmt.Errorf("ner: config has no id2label map")
	}
	labels := make([]string, len(cfg.ID2Label))
	for k, v := range cfg.ID2Label {
		id, err := strconv.Atoi(k)
		if err != nil || id < 0 || id >= len(labels) {
			return nil, fmt.Errorf("ner: bad label id %q in config", k)
		}
		labels[id] = v
	}
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("ner: label id %d missing from config", i)
		}
	}
	return labels, nil
}
