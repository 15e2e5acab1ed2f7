package unsplash

// Ссылки на разные размеры фото
type UnsplashPhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// Служебные ссылки фото
type UnsplashPhotoLinks struct {
	Self             string `json:"self"`
	HTML             string `json:"html"`
	Download         string `json:"download"`
	DownloadLocation string `json:"download_location"`
}

// UnsplashPhotoResponse ответ GET /photos/random (лишние поля игнорируются).
// alt_description в API бывает null, поэтому указатель.
type UnsplashPhotoResponse struct {
	ID               string             `json:"id"`
	Description      *string            `json:"description"`
	AltDescription   *string            `json:"alt_description"`
	URLs             UnsplashPhotoURLs  `json:"urls"`
	Links            UnsplashPhotoLinks `json:"links"`
	AlternativeSlugs map[string]string  `json:"alternative_slugs"`
}

// UnsplashErrorResponse тело ответа API при ошибке
type UnsplashErrorResponse struct {
	Errors []string `json:"errors"`
}
