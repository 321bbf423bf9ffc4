package rpd

import (
	"fmt"
	"io"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/fsutil"
	"github.com/bytedance/sonic"
)

// DefaultIndent is used when a writer is given no indent.
const DefaultIndent = "  "

// Marshal encodes doc with sorted keys. An empty indent writes compact JSON.
func Marshal(doc map[string]any, indent string) ([]byte, error) {
	if indent == "" {
		return sonic.ConfigStd.Marshal(doc)
	}
	return sonic.ConfigStd.MarshalIndent(doc, "", indent)
}

// Write encodes doc to w followed by a newline.
func Write(w io.Writer, doc map[string]any, indent string) error {
	data, err := Marshal(doc, indent)
	if err != nil {
		return fmt.Errorf("rpd: encode: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("rpd: write: %w", err)
	}
	return nil
}

// WriteFile writes doc to path. compression is a fsutil compression name;
// the empty string picks one from the extension.
func WriteFile(path, compression string, doc map[string]any, indent string) (err error) {
	out, err := fsutil.CreateOutput(path, compression)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("rpd: close %s: %w", path, cerr)
		}
	}()
	return Write(out, doc, indent)
}
