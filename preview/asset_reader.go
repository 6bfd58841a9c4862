package preview

import (
	"encoding/json"
	"os"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
)

type AssetReader interface {
	Read(fileName string) ([]domain.MediaAsset, error)
}

type fileAssetReader struct {
	logger outbound.LoggerPort
}

func NewFileAssetReader(logger outbound.LoggerPort) AssetReader {
	return &fileAssetReader{
		logger: logger,
	}
}

func (f *fileAssetReader) Read(fileName string) ([]domain.MediaAsset, error) {
	file, err := os.Open(fileName)
	if err != nil {
		f.logger.Error(err, "failed to open preview asset file")
		return nil, err
	}
	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			f.logger.Error(err, "failed to close preview asset file")
		}
	}(file)

	var previewAssets []PreviewAsset
	if err := json.NewDecoder(file).Decode(&previewAssets); err != nil {
		f.logger.Error(err, "failed to decode preview asset file")
		return nil, err
	}

	assets := make([]domain.MediaAsset, 0, len(previewAssets))
	for _, a := range previewAssets {
		assets = append(assets, a.toDomain())
	}

	return assets, nil
}
