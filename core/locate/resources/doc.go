/*
Package resources locates font files for a bake.

Font names given to the baker are resolved against explicit file
paths, directories named in the application configuration, and the
system's fonts-folders, in this order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'bakefont.resources'.
func tracer() tracing.Trace {
	return tracing.Select("bakefont.resources")
}
