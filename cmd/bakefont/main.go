/*
Command bakefont bakes a texture atlas from a set of scalable fonts.

Every -font flag adds one rasterisation task:

   bakefont -o myatlas -charset latin1 \
       -font "Sans=Roboto-Regular.ttf:14" \
       -font "Sans=Roboto-Regular.ttf:16" \
       -font "Mono=RobotoMono-Regular.ttf:14:mono"

The output is a pair of files, myatlas.png and myatlas.bf3.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/bakefont/atlas"
	"github.com/npillmayer/bakefont/core"
	"github.com/npillmayer/bakefont/core/charset"
	"github.com/npillmayer/bakefont/core/font"
	"github.com/npillmayer/bakefont/core/locate/resources"
	"github.com/npillmayer/bakefont/pack"
	"github.com/npillmayer/bakefont/render"
)

// fontSpec is one -font argument: name=pattern:size[:mono]
type fontSpec struct {
	name    string
	pattern string
	size    float64
	mono    bool
}

type fontSpecs []fontSpec

func (fs *fontSpecs) String() string {
	return fmt.Sprintf("%d font specs", len(*fs))
}

func (fs *fontSpecs) Set(arg string) error {
	eq := strings.IndexByte(arg, '=')
	if eq <= 0 {
		return fmt.Errorf("font spec %q: expected name=pattern:size[:mono]", arg)
	}
	spec := fontSpec{name: arg[:eq]}
	parts := strings.Split(arg[eq+1:], ":")
	if len(parts) < 2 {
		return fmt.Errorf("font spec %q: expected name=pattern:size[:mono]", arg)
	}
	if len(parts) > 2 && parts[len(parts)-1] == "mono" {
		spec.mono = true
		parts = parts[:len(parts)-1]
	}
	var err error
	if spec.size, err = strconv.ParseFloat(parts[len(parts)-1], 64); err != nil {
		return fmt.Errorf("font spec %q: cannot parse size: %v", arg, err)
	}
	spec.pattern = strings.Join(parts[:len(parts)-1], ":")
	*fs = append(*fs, spec)
	return nil
}

func main() {
	var specs fontSpecs
	output := flag.String("o", "atlas", "output base path (suffixes .png and .bf3 are appended)")
	charsetArg := flag.String("charset", "latin1", "character set: ascii, latin1, or a text file")
	flag.Var(&specs, "font", "rasterisation task, name=pattern:size[:mono] (repeatable)")
	flag.Parse()
	if len(specs) == 0 {
		fmt.Fprintln(os.Stderr, "no fonts given; nothing to bake")
		flag.Usage()
		os.Exit(2)
	}
	if err := bake(specs, *charsetArg, *output); err != nil {
		core.UserError(err)
		os.Exit(1)
	}
}

func bake(specs fontSpecs, charsetArg, output string) error {
	cs, err := selectCharset(charsetArg)
	if err != nil {
		return err
	}
	fonts := make(map[string]*font.Font) // bake-unique by name
	var results []*render.Result
	for _, spec := range specs {
		f, ok := fonts[spec.name]
		if !ok {
			fpath, err := resources.ResolveFontFile(nil, spec.pattern)
			if err != nil {
				return err
			}
			sf, err := font.LoadOpenTypeFont(fpath)
			if err != nil {
				return err
			}
			f = font.NewFont(spec.name, sf)
			fonts[spec.name] = f
		}
		r, err := render.Run(render.Task{
			Font:        f,
			Size:        spec.size,
			Charset:     cs,
			CharsetName: charsetArg,
			Antialias:   !spec.mono,
		})
		if err != nil {
			return err
		}
		results = append(results, r)
	}
	res, err := pack.Pack(results, nil)
	if err != nil {
		return err
	}
	if err := atlas.Save(res, output); err != nil {
		return err
	}
	fmt.Printf("baked %d glyphs in %d modes into %dx%d atlas %s.png + %s.bf3\n",
		len(res.Glyphs), len(res.Modes), res.Width, res.Height, output, output)
	return nil
}

func selectCharset(arg string) (charset.Set, error) {
	switch arg {
	case "ascii":
		return charset.ASCII(), nil
	case "latin1":
		return charset.Latin1(), nil
	}
	text, err := ioutil.ReadFile(arg)
	if err != nil {
		return charset.Set{}, core.WrapError(err, core.EMISSING,
			"charset must be 'ascii', 'latin1' or a readable text file: %s", arg)
	}
	return charset.New(charset.Text(string(text)))
}
