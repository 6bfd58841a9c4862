package adapters

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/google/uuid"
)

type ffmpegAudioConcat struct {
	logger outbound.LoggerPort
}

func NewFFmpegAudioConcat(logger outbound.LoggerPort) outbound.ConcatenateAudioPort {
	return &ffmpegAudioConcat{
		logger: logger,
	}
}

// Concatenate joins the per-segment narration clips into one track, in
// ordinal order, via an ffmpeg concat list.
func (f *ffmpegAudioConcat) Concatenate(segments []domain.SegmentAudio) (finalFileName string, err error) {
	sort.Sort(domain.SegmentAudioAscByOrdinal(segments))

	fileList, err := os.Create(filepath.Join(os.TempDir(), uuid.NewString()))
	if err != nil {
		f.logger.Error(err, "Failed to create audio list file")
		return
	}

	defer func(fileList *os.File) {
		err := fileList.Close()
		if err != nil {
			f.logger.Error(err, "Failed to close audio list file")
			return
		}
		err = os.Remove(fileList.Name())
		if err != nil {
			f.logger.Error(err, "Failed to remove audio list file")
			return
		}
		for _, s := range segments {
			err = os.Remove(s.FileName)
			if err != nil {
				f.logger.Error(err, "Failed to remove segment clip")
				return
			}
		}
	}(fileList)

	writer := bufio.NewWriter(fileList)
	for _, s := range segments {
		_, err = writer.WriteString("file '" + s.FileName + "'\n")
		if err != nil {
			f.logger.Error(err, "Failed to write to audio list file")
			return
		}
	}
	err = writer.Flush()
	if err != nil {
		f.logger.Error(err, "Failed to flush audio list file")
		return
	}

	finalFileName = filepath.Join(os.TempDir(), uuid.NewString()+".mp3")

	cmd := exec.Command("ffmpeg", "-f", "concat", "-safe", "0", "-i", fileList.Name(), "-c", "copy", finalFileName)
	err = cmd.Run()
	if err != nil {
		f.logger.Error(err, "Failed to concatenate narration clips")
		return
	}

	return
}
