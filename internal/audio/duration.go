package audio

import "time"

// BufferDuration converts a frame count at sampleRate to a duration.
func BufferDuration(frames, sampleRate int) time.Duration {
	if frames <= 0 || sampleRate <= 0 {
		return 0
	}

	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}
