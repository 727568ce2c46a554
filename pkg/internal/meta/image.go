package meta

import (
	"fmt"
	"image"
	_ "image/gif"  // 注册 GIF 解码器
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"os"

	_ "golang.org/x/image/bmp"  // 注册 BMP 解码器
	_ "golang.org/x/image/tiff" // 注册 TIFF 解码器
	_ "golang.org/x/image/webp" // 注册 WebP 解码器
)

// imageSniffer 提取图片分辨率和格式.
// 只解码图片头，不把整张图读进内存.
func imageSniffer(path string, out map[string]string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("decode image config: %w", err)
	}

	out[KeyResolution] = fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
	out[KeyFormat] = format

	return nil
}

func init() {
	RegisterSniffer("image/", imageSniffer)
}
