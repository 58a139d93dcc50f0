package util

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// GenerateMediaID 生成唯一的媒体标识，用作存储对象名
func GenerateMediaID() string {
	return uuid.New().String()
}

// MediaIDFromURL 从媒体URL提取存储标识：最后一个路径段，去掉扩展名
func MediaIDFromURL(url string) string {
	segment := url
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if i := strings.Index(segment, "."); i >= 0 {
		segment = segment[:i]
	}
	return segment
}

// DecodeDataURL 解析 data:<type>;base64,<payload> 形式的图片数据
// 返回字节内容和内容类型
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, "", errors.New("不是有效的数据URL")
	}

	rest := strings.TrimPrefix(dataURL, "data:")
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return nil, "", errors.New("数据URL缺少内容部分")
	}

	meta, payload := rest[:sep], rest[sep+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", errors.New("仅支持 base64 编码的数据URL")
	}
	contentType := strings.TrimSuffix(meta, ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}

	return data, contentType, nil
}
