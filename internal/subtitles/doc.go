// Package subtitles extracts text subtitle tracks from containers and
// reformats their dialogue markup.
//
// The transformer is two composable passes: StripFontTags removes every
// inline font tag, and Reformat re-wraps each cue's dialogue block in a
// single normalized font span. Strip must run before Reformat so the
// output never nests or duplicates markup.
package subtitles
