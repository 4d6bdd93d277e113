// Package catalog loads the selector catalog for the creator page.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bft-labs/xhspost/internal/domain"
)

//go:embed selectors.yaml
var defaultCatalog []byte

// Default returns the embedded catalog.
func Default() (domain.Selectors, error) {
	var s domain.Selectors
	if err := yaml.Unmarshal(defaultCatalog, &s); err != nil {
		return s, fmt.Errorf("parse embedded selectors: %w", err)
	}
	return s, nil
}

// Load returns the embedded catalog overlaid with the YAML file at path.
// Keys absent from the file keep their defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (domain.Selectors, error) {
	s, err := Default()
	if err != nil {
		return s, err
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read selectors file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse selectors file %s: %w", path, err)
	}
	if err := Validate(s); err != nil {
		return s, fmt.Errorf("selectors file %s: %w", path, err)
	}
	return s, nil
}

// Validate checks that every lookup the publisher depends on is present.
func Validate(s domain.Selectors) error {
	var errs []error
	required := map[string]string{
		"upload_trigger.selector": s.UploadTrigger.Selector,
		"file_input":              s.FileInput,
		"title_input":             s.TitleInput,
		"editor":                  s.Editor,
		"mention_list":            s.MentionList,
		"tag_token":               s.TagToken,
		"buttons":                 s.Buttons,
	}
	for key, v := range required {
		if v == "" {
			errs = append(errs, fmt.Errorf("%s is empty", key))
		}
	}
	if len(s.PublishButtons) == 0 {
		errs = append(errs, errors.New("publish_buttons is empty"))
	}
	lists := map[string][]domain.Finder{
		"publish_buttons": s.PublishButtons,
		"return_buttons":  s.ReturnButtons,
		"close_controls":  s.CloseControls,
	}
	for key, finders := range lists {
		for i, f := range finders {
			if f.Selector == "" {
				errs = append(errs, fmt.Errorf("%s[%d] (%s) has no selector", key, i, f.Name))
			}
		}
	}
	return errors.Join(errs...)
}
