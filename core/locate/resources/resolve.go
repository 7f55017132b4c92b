package resources

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/bakefont/core"
	"github.com/npillmayer/bakefont/core/font"
	"github.com/npillmayer/schuko"
)

// notFound returns an application error for a missing font resource.
func notFound(name string) error {
	return core.Error(core.EMISSING, "font not found: %s", name)
}

// ResolveFontFile locates the font file for a name pattern. It searches,
// in order:
//
// ▪︎ the pattern itself, taken as a file path
//
// ▪︎ directories listed in the configuration key 'fontdirs'
//   (separated by the platform's list separator)
//
// ▪︎ the system's fonts-folders (OS dependent)
//
// conf may be nil, skipping the configured directories.
func ResolveFontFile(conf schuko.Configuration, pattern string) (string, error) {
	if isFontFile(pattern) {
		tracer().Debugf("%s is a font file path", pattern)
		return pattern, nil
	}
	if conf != nil {
		if fpath := findConfiguredFont(conf, pattern); fpath != "" {
			return fpath, nil
		}
	}
	fpath, err := findfont.Find(pattern) // lib does not accept style & weight
	if err == nil && fpath != "" {
		tracer().Debugf("%s is a system font: %s", pattern, fpath)
		return fpath, nil
	}
	return "", notFound(pattern)
}

// ResolveFont loads the font for a name pattern
// (see ResolveFontFile).
func ResolveFont(conf schuko.Configuration, pattern string) (*font.ScalableFont, error) {
	fpath, err := ResolveFontFile(conf, pattern)
	if err != nil {
		return nil, err
	}
	return font.LoadOpenTypeFont(fpath)
}

func isFontFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// findConfiguredFont scans the directories of the 'fontdirs'
// configuration entry for a file whose name starts with the pattern.
func findConfiguredFont(conf schuko.Configuration, pattern string) string {
	fontdirs := conf.GetString("fontdirs")
	if fontdirs == "" {
		return ""
	}
	norm := font.NormalizeFontname(pattern)
	for _, dir := range filepath.SplitList(fontdirs) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			tracer().Infof("cannot read configured font directory %s", dir)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.HasPrefix(font.NormalizeFontname(entry.Name()), norm) {
				fpath := filepath.Join(dir, entry.Name())
				tracer().Debugf("%s found in configured directory: %s", pattern, fpath)
				return fpath
			}
		}
	}
	return ""
}
