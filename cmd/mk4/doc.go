// Command mk4 converts MKV files to MP4 with the default subtitle
// track burned into the video.
package main
