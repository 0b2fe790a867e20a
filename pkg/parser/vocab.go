package parser

import "regexp"

// Release-name noise vocabulary. Data-driven so new tags can be added
// without touching the extraction control flow.
var noiseTokens = map[string]struct{}{
	// Sources
	"bluray": {}, "blu": {}, "ray": {}, "bdrip": {}, "brrip": {}, "remux": {},
	"dvdrip": {}, "dvd": {}, "webrip": {}, "web": {}, "webdl": {}, "dl": {},
	"hdtv": {}, "hdrip": {}, "cam": {}, "hdcam": {}, "uhd": {},
	"nf": {}, "netflix": {}, "amzn": {}, "hulu": {}, "imax": {},

	// Video codecs
	"x264": {}, "x265": {}, "h264": {}, "h265": {}, "hevc": {}, "avc": {},
	"av1": {}, "xvid": {}, "divx": {},

	// Audio
	"dts": {}, "dtshd": {}, "truehd": {}, "atmos": {}, "aac": {}, "ac3": {},
	"eac3": {}, "ddp": {}, "dd": {}, "flac": {}, "mp3": {}, "opus": {},
	"pcm": {}, "ma": {}, "hra": {},

	// Dynamic range
	"hdr": {}, "hdr10": {}, "hdr10plus": {}, "dv": {}, "dovi": {},
	"dolby": {}, "vision": {}, "sdr": {}, "hlg": {},

	// Edition / misc markers
	"remastered": {}, "extended": {}, "theatrical": {}, "unrated": {},
	"proper": {}, "repack": {}, "internal": {}, "limited": {},
	"multi": {}, "dual": {}, "audio": {}, "subs": {}, "multisub": {},
	"chs": {}, "cht": {}, "gb": {}, "big5": {}, "hd": {},

	// Known release groups
	"publichd": {}, "rarbg": {}, "yify": {}, "yts": {}, "sparks": {},
	"cmrg": {}, "eam": {}, "protonmovies": {}, "phdteam": {}, "chd": {},
	"wiki": {}, "cnxp": {},
}

var (
	// 1080p, 720p, 2160p, 480i...
	resolutionRe = regexp.MustCompile(`^\d{3,4}[pi]$`)
	// 4k / 8k
	kResolutionRe = regexp.MustCompile(`^[48]k$`)
	yearRe        = regexp.MustCompile(`\b(18|19|20)\d{2}\b`)
	// A year glued directly onto title text, e.g. "变形金刚2007"
	gluedYearRe = regexp.MustCompile(`([^\d\s])((?:18|19|20)\d{2})(\D|$)`)
	digitsRe    = regexp.MustCompile(`^\d+$`)
	delimRe     = regexp.MustCompile(`[._\-\s]+`)
	bracketRes  = []*regexp.Regexp{
		regexp.MustCompile(`\([^()]*\)`),
		regexp.MustCompile(`\[[^\[\]]*\]`),
		regexp.MustCompile(`\{[^{}]*\}`),
	}
)

// isNoiseToken reports whether a lowercased token is release metadata
// rather than title text.
func isNoiseToken(tok string) bool {
	if _, ok := noiseTokens[tok]; ok {
		return true
	}
	return resolutionRe.MatchString(tok) || kResolutionRe.MatchString(tok)
}

// isSourceTag reports whether a token marks the typical
// resolution/source position right after the release year.
func isSourceTag(tok string) bool {
	if resolutionRe.MatchString(tok) || kResolutionRe.MatchString(tok) {
		return true
	}
	switch tok {
	case "bluray", "bdrip", "brrip", "remux", "dvdrip", "webrip", "web",
		"webdl", "hdtv", "hdrip", "uhd", "imax":
		return true
	}
	return false
}
