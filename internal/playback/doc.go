// Package playback plays a video as ASCII art.
//
// Frames are extracted up front by an [Extractor] (ffmpeg) into a working
// directory, then drawn one at a time inside an alternate-screen session:
//
//   - [ResetDir]: empty the working directory
//   - [FFmpeg]: run ffmpeg to completion, reporting progress
//   - [ListFrames]: frame files in sequence order
//   - [Player]: paced playback at a fixed frame rate
//
// # Pacing
//
// Each frame is timed from decode start. After drawing, the player sleeps
// for whatever remains of the frame interval. A slow frame is never made up
// for and no frame is ever dropped.
package playback
