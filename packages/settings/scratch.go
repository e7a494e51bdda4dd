package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ScratchDestination returns the document's destination override when it
// has one, otherwise a unique temp-file path for throwaway preview
// output. The suffix comes from the temp_preview_suffix setting.
func (s *Settings) ScratchDestination() string {
	if dest, ok := s.Destination(); ok {
		return dest
	}

	suffix := stringify(s.GetDefault("temp_preview_suffix", ".html"))
	name := "untitled"
	if s.docPath != "" {
		base := filepath.Base(s.docPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s%s", name, uuid.NewString(), suffix))
}
