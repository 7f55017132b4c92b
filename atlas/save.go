package atlas

import (
	"image/png"
	"os"

	"github.com/npillmayer/bakefont/core"
	"github.com/npillmayer/bakefont/pack"
)

// Save writes the atlas image to basepath+".png" and the metadata to
// basepath+".bf3". Partial output may remain on error.
func Save(res *pack.Result, basepath string) error {
	if err := savePNG(res, basepath+".png"); err != nil {
		return err
	}
	data, err := Encode(res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(basepath+".bf3", data, 0644); err != nil {
		return core.WrapError(err, core.EIO, "cannot write metadata file %s", basepath+".bf3")
	}
	tracer().Infof("saved %s.png and %s.bf3", basepath, basepath)
	return nil
}

func savePNG(res *pack.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EIO, "cannot create atlas image %s", path)
	}
	defer f.Close()
	if err := png.Encode(f, Image(res)); err != nil {
		return core.WrapError(err, core.EIO, "cannot encode atlas image %s", path)
	}
	return nil
}
