// Package onnx runs the fine-tuned activity classifier locally through ONNX
// Runtime with a HuggingFace-format tokenizer.
package onnx

import (
	"context"
	"fmt"

	tokenizer "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Config locates the exported model artifacts and bounds inference batches.
type Config struct {
	ModelPath     string
	TokenizerPath string
	// LibraryPath points at libonnxruntime; empty keeps the library default.
	LibraryPath string
	BatchSize   int
	MaxSeqLen   int
}

// Classifier holds a live ONNX session for the sequence-classification head.
type Classifier struct {
	tok     *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession
	cfg     Config
}

// New loads the tokenizer and model and initializes the runtime.
func New(cfg Config) (*Classifier, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 16
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = 128
	}

	tok, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer opts.Destroy()

	if err := opts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, fmt.Errorf("failed to set graph optimization: %w", err)
	}
	if err := opts.SetIntraOpNumThreads(0); err != nil {
		return nil, fmt.Errorf("failed to set thread count: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"logits"},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &Classifier{tok: tok, session: session, cfg: cfg}, nil
}

// Classify labels every text 0 or 1, batched for memory, preserving order.
func (c *Classifier) Classify(ctx context.Context, texts []string) ([]int, error) {
	labels := make([]int, 0, len(texts))
	for start := 0; start < len(texts); start += c.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + c.cfg.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := c.classifyBatch(texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch failed: %w", err)
		}
		labels = append(labels, batch...)
	}
	return labels, nil
}

func (c *Classifier) classifyBatch(texts []string) ([]int, error) {
	inputs := make([]tokenizer.EncodeInput, len(texts))
	for i, t := range texts {
		inputs[i] = tokenizer.NewSingleEncodeInput(tokenizer.NewInputSequence(t))
	}
	encodings, err := c.tok.EncodeBatch(inputs, true)
	if err != nil {
		return nil, fmt.Errorf("tokenization failed: %w", err)
	}

	// Truncate to the training sequence length, then pad to the batch max.
	maxLen := 0
	for _, enc := range encodings {
		l := len(enc.GetIds())
		if l > c.cfg.MaxSeqLen {
			l = c.cfg.MaxSeqLen
		}
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return make([]int, len(texts)), nil
	}

	batchSize := len(encodings)
	inputIds := make([]int64, batchSize*maxLen)
	attentionMask := make([]int64, batchSize*maxLen)
	tokenTypeIds := make([]int64, batchSize*maxLen)

	for i, enc := range encodings {
		ids := enc.GetIds()
		mask := enc.GetAttentionMask()
		if len(ids) > maxLen {
			ids = ids[:maxLen]
			mask = mask[:maxLen]
		}
		offset := i * maxLen
		for j, id := range ids {
			inputIds[offset+j] = int64(id)
			attentionMask[offset+j] = int64(mask[j])
		}
	}

	shape := ort.NewShape(int64(batchSize), int64(maxLen))
	inputIdsTensor, err := ort.NewTensor(shape, inputIds)
	if err != nil {
		return nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	defer inputIdsTensor.Destroy()

	attentionMaskTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	defer attentionMaskTensor.Destroy()

	tokenTypeIdsTensor, err := ort.NewTensor(shape, tokenTypeIds)
	if err != nil {
		return nil, fmt.Errorf("failed to create token_type_ids tensor: %w", err)
	}
	defer tokenTypeIdsTensor.Destroy()

	outputs := make([]ort.Value, 1)
	err = c.session.Run(
		[]ort.Value{inputIdsTensor, attentionMaskTensor, tokenTypeIdsTensor},
		outputs,
	)
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	defer outputs[0].Destroy()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("logits tensor is not float32 type")
	}

	// Logits shape is [batch_size, num_labels]; the label is the argmax.
	outShape := logitsTensor.GetShape()
	if len(outShape) != 2 {
		return nil, fmt.Errorf("unexpected logits shape %v", outShape)
	}
	numLabels := outShape[1]
	data := logitsTensor.GetData()

	labels := make([]int, batchSize)
	for i := int64(0); i < int64(batchSize); i++ {
		row := data[i*numLabels : (i+1)*numLabels]
		best := 0
		for j := 1; j < len(row); j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		labels[i] = best
	}
	return labels, nil
}

// Close releases the session and the runtime environment.
func (c *Classifier) Close() error {
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
	return nil
}
