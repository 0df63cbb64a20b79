package constants

import (
	"os"
	"path/filepath"
)

func GetRootDir() string {
	path := os.Getenv("PIANOBENCH_ROOT")
	if path != "" {
		return path
	}
	return "."
}

func GetCatalogPath() string {
	path := os.Getenv("CATALOG_PATH")
	if path != "" {
		return path
	}
	return filepath.Join(GetRootDir(), "piano-synth", "available_tests.json")
}

func GetAudioDir() string {
	path := os.Getenv("AUDIO_DIR")
	if path != "" {
		return path
	}
	return filepath.Join(GetRootDir(), "piano-synth", "target_music")
}

func GetConvertScript() string {
	path := os.Getenv("CONVERT_SCRIPT")
	if path != "" {
		return path
	}
	return filepath.Join(GetRootDir(), "piano-synth", "src", "convert_to_mp3.bash")
}

func GetSourceExt() string {
	ext := os.Getenv("SOURCE_EXT")
	if ext != "" {
		return ext
	}
	return ".wav"
}

func GetTargetExt() string {
	ext := os.Getenv("TARGET_EXT")
	if ext != "" {
		return ext
	}
	return ".mp3"
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}

const DefaultSampleRate = 22050
const DefaultHopLength = 512

// A4 = 440 Hz is semitone 69
const ReferenceFreq = 440.0
const ReferenceSemitone = 69

// RestCode is the pitch code for unpitched notes. Semitone 0 is far below
// anything the synth plays so it never collides with a real pitch.
const RestCode = 0

const ScoreTolerance = 0.05

// absorbs binary rounding in decimal accuracies, e.g. 0.85 - 0.80
const ScoreEpsilon = 1e-9

const BoundaryTolerance = 3

const MetadataTable = "pianobench-metadata"
