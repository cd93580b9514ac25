package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uracard.link/configs/configslog"
)

// AssetServiceError görsel yaşam döngüsü hataları.
type AssetServiceError string

func (e AssetServiceError) Error() string { return string(e) }

const (
	// ErrAssetUploadFailed yükleme hatası kaydetme işleminin tamamını iptal eder.
	ErrAssetUploadFailed AssetServiceError = "görsel yüklenemedi, lütfen tekrar deneyin"
)

// TransientRefPrefix tarayıcı tarafındaki geçici önizleme referanslarının
// öneki. Bu referanslar yalnızca oturum içinde geçerlidir ve kalıcı kayda
// ASLA yazılmaz.
const TransientRefPrefix = "blob:"

// IsTransientRef referansın geçici yerel önizleme olup olmadığını döndürür.
func IsTransientRef(ref string) bool {
	return strings.HasPrefix(ref, TransientRefPrefix)
}

// sharedAssetHosts kullanıcıya ait olmayan, paylaşılan galeri görsellerinin
// sunucuları. Bunlar hiçbir koşulda silinmez (hazır avatar koleksiyonu).
var sharedAssetHosts = []string{"api.dicebear.com"}

func isSharedAsset(ref string) bool {
	for _, host := range sharedAssetHosts {
		if strings.Contains(ref, host) {
			return true
		}
	}
	return false
}

// PendingUpload kaydetme anında yüklenmeyi bekleyen görsel dosyası.
type PendingUpload struct {
	Filename string
	Content  io.Reader
}

// IObjectStorage obje deposu işbirlikçisi. Upload başarılıysa kalıcı URL
// döndürür; URL üretilemiyorsa da hata döner (sessiz kısmi başarı yok).
type IObjectStorage interface {
	Upload(ctx context.Context, path string, content io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
	// Owns URL'nin bu depoya ait olup olmadığını söyler.
	Owns(url string) bool
	// PathFromURL depoya ait bir URL'yi obje yoluna çevirir.
	PathFromURL(url string) (string, bool)
}

// IAssetService kart görsellerinin yaşam döngüsünü yönetir.
type IAssetService interface {
	// ResolvePendingImage kaydetme sırasında slot başına bir kez çağrılır
	// ve kalıcı kayda yazılacak referansı döndürür.
	ResolvePendingImage(ctx context.Context, slot string, pending *PendingUpload, currentRef, initialRemoteRef string) (string, error)
	// CleanupSuperseded başarılı kayıttan SONRA eski görseli siler.
	// Silme hataları loglanır ve yutulur; kayıt zaten kalıcı olarak güncellendi.
	CleanupSuperseded(ctx context.Context, initialRef, finalRef string)
}

// AssetService IAssetService arayüzünü uygular.
type AssetService struct {
	storage IObjectStorage
}

// NewAssetService verilen depo ile çalışan asset servisi oluşturur.
func NewAssetService(storage IObjectStorage) IAssetService {
	return &AssetService{storage: storage}
}

// ResolvePendingImage öncelik sırası:
//  1. Yeni dosya seçildiyse yükle; yükleme hatası kaydetmeyi iptal eder,
//     asla sessizce atlanmaz.
//  2. Dosya yok ama eldeki referans geçici bir önizlemeyse (state desync),
//     son bilinen kalıcı referansa geri dön.
//  3. Aksi halde eldeki referans aynen kullanılır.
func (s *AssetService) ResolvePendingImage(ctx context.Context, slot string, pending *PendingUpload, currentRef, initialRemoteRef string) (string, error) {
	if pending != nil {
		defer closeIfCloser(pending.Content)

		objectPath := buildObjectPath(slot, pending.Filename)
		url, err := s.storage.Upload(ctx, objectPath, pending.Content)
		if err != nil {
			configslog.Log.Error("Görsel yükleme başarısız, kaydetme iptal ediliyor",
				zap.String("slot", slot), zap.String("path", objectPath), zap.Error(err))
			return "", fmt.Errorf("%w (%s)", ErrAssetUploadFailed, slot)
		}
		return url, nil
	}

	if IsTransientRef(currentRef) {
		// Buraya yalnızca bir state-desync hatasıyla gelinebilir; geçici
		// referans kalıcı kayda yazılamaz.
		configslog.Log.Warn("Geçici önizleme referansı yakalandı, kalıcı referansa dönülüyor",
			zap.String("slot", slot), zap.String("initial", initialRemoteRef))
		return initialRemoteRef, nil
	}

	return currentRef, nil
}

// CleanupSuperseded eski referans değiştiyse ve bize aitse siler.
// Paylaşılan galeri görselleri muaftır.
func (s *AssetService) CleanupSuperseded(ctx context.Context, initialRef, finalRef string) {
	if initialRef == "" || initialRef == finalRef {
		return
	}
	if isSharedAsset(initialRef) {
		return
	}
	path, ok := s.storage.PathFromURL(initialRef)
	if !ok || !s.storage.Owns(initialRef) {
		// Harici URL (kullanıcının yapıştırdığı adres vb.), dokunma.
		return
	}
	if err := s.storage.Delete(ctx, path); err != nil {
		configslog.Log.Warn("Eski görsel silinemedi (kayıt güncel, devam ediliyor)",
			zap.String("path", path), zap.Error(err))
	}
}

func buildObjectPath(slot, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	return slot + "/" + uuid.New().String() + ext
}

func closeIfCloser(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		_ = c.Close()
	}
}

var _ IAssetService = (*AssetService)(nil)

// LocalStorage diske yazan obje deposu. Dosyalar uploadDir altında tutulur
// ve publicBase (örn: http://localhost:3000/uploads) altından sunulur.
type LocalStorage struct {
	uploadDir  string
	publicBase string
}

// NewLocalStorage yerel depo oluşturur; kök dizini hazırlar.
func NewLocalStorage(uploadDir, publicBase string) (*LocalStorage, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{
		uploadDir:  uploadDir,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload dosyayı diske yazar ve kalıcı public URL döndürür.
func (s *LocalStorage) Upload(ctx context.Context, path string, content io.Reader) (string, error) {
	fullPath := filepath.Join(s.uploadDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("dizin oluşturulamadı: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("dosya oluşturulamadı: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		// Yarım dosya bırakma.
		os.Remove(fullPath)
		return "", fmt.Errorf("dosya yazılamadı: %w", err)
	}

	return s.publicBase + "/" + path, nil
}

// Delete objeyi diskten siler. Zaten yoksa hata saymaz.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	fullPath := filepath.Join(s.uploadDir, filepath.FromSlash(path))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStorage) Owns(url string) bool {
	return strings.HasPrefix(url, s.publicBase+"/")
}

func (s *LocalStorage) PathFromURL(url string) (string, bool) {
	if !s.Owns(url) {
		return "", false
	}
	return strings.TrimPrefix(url, s.publicBase+"/"), true
}

var _ IObjectStorage = (*LocalStorage)(nil)
