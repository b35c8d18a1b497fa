package ui

import "strings"

const bannerRows = 6

var bannerArt = [bannerRows]string{
	`██████╗ ███████╗██╗  ██╗`,
	`██╔══██╗██╔════╝██║  ██║`,
	`██████╔╝███████╗███████║`,
	`██╔═══╝ ╚════██║██╔══██║`,
	`██║     ███████║██║  ██║`,
	`╚═╝     ╚══════╝╚═╝  ╚═╝`,
}

// dotArt is one progress dot, bottom-aligned with the banner.
var dotArt = [bannerRows]string{"   ", "   ", "   ", "   ", "██╗", "╚═╝"}

// maxDots is the longest dot run in the unlocking animation.
const maxDots = 3

// bannerFrames holds the gradient banner followed by zero to maxDots dots.
// Unlocking cycles through them. Every other state shows frame 0.
var bannerFrames = func() []string {
	frames := make([]string, maxDots+1)
	for dots := range frames {
		var sb strings.Builder
		for row := 0; row < bannerRows; row++ {
			if row > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(bannerArt[row])
			for d := 0; d < dots; d++ {
				sb.WriteString(" " + dotArt[row])
			}
		}
		frames[dots] = GradientText(sb.String(), GradientStart, GradientEnd)
	}
	return frames
}()

// Banner returns the banner frame for an animation tick.
func Banner(frame int) string {
	return bannerFrames[frame%len(bannerFrames)]
}
