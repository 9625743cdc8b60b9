package enrich

import (
	"errors"
	"fmt"
)

// UnknownPublisher возвращается, когда ни один известный издатель не найден в заголовке.
const UnknownPublisher = "Unknown"

// Publisher описывает известного издателя: фрагмент имени для поиска в заголовке и URL логотипа.
type Publisher struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Catalog содержит упорядоченный список издателей и таблицу их логотипов.
// Порядок списка задает приоритет при поиске. Каталог неизменяем после создания.
type Catalog struct {
	names       []string
	logos       map[string]string
	unknownLogo string
}

// NewCatalog создает каталог из списка издателей и логотипа для "Unknown".
// Возвращает ошибку при пустых именах, дубликатах или отсутствующих логотипах.
func NewCatalog(publishers []Publisher, unknownLogo string) (*Catalog, error) {
	if unknownLogo == "" {
		return nil, errors.New("unknown publisher logo must not be empty")
	}
	c := &Catalog{
		names:       make([]string, 0, len(publishers)),
		logos:       make(map[string]string, len(publishers)),
		unknownLogo: unknownLogo,
	}
	for i, p := range publishers {
		if p.Name == "" {
			return nil, fmt.Errorf("publisher #%d has empty name", i)
		}
		if p.Name == UnknownPublisher {
			return nil, fmt.Errorf("publisher name %q is reserved", UnknownPublisher)
		}
		if p.Logo == "" {
			return nil, fmt.Errorf("publisher %q has empty logo", p.Name)
		}
		if _, dup := c.logos[p.Name]; dup {
			return nil, fmt.Errorf("duplicate publisher %q", p.Name)
		}
		c.names = append(c.names, p.Name)
		c.logos[p.Name] = p.Logo
	}
	return c, nil
}

// Names возвращает копию списка имен в порядке приоритета.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Logo возвращает логотип издателя. Для незарегистрированных имен
// возвращается логотип "Unknown".
func (c *Catalog) Logo(publisher string) string {
	if logo, ok := c.logos[publisher]; ok {
		return logo
	}
	return c.unknownLogo
}

// Known сообщает, есть ли издатель в каталоге. "Unknown" считается известным.
func (c *Catalog) Known(publisher string) bool {
	if publisher == UnknownPublisher {
		return true
	}
	_, ok := c.logos[publisher]
	return ok
}

// UnknownLogo возвращает логотип для неизвестного издателя.
func (c *Catalog) UnknownLogo() string { return c.unknownLogo }

const defaultUnknownLogo = "https://github.com/user-attachments/assets/1beab735-a8f3-47c4-a493-5be2d0551b52"

// DefaultPublishers возвращает встроенный список издателей тамильских новостей.
func DefaultPublishers() []Publisher {
	return []Publisher{
		{Name: "நக்கீரன்", Logo: "https://github.com/user-attachments/assets/40a13f23-d2e1-4f83-a042-4472da15aa2e"},
		{Name: "Hindustan", Logo: "https://github.com/user-attachments/assets/eec59781-fec3-4c59-936a-039538d94718"},
		{Name: "தினமணி", Logo: "https://github.com/user-attachments/assets/4f127c46-8c3d-4d51-a517-0882cb37b2da"},
		{Name: "தினத்", Logo: "https://github.com/user-attachments/assets/28d3b77b-c026-488e-a4ad-8831d048d28c"},
		{Name: "IBC", Logo: "https://github.com/user-attachments/assets/123c2455-eed2-4433-8fb1-402b23c360c5"},
		{Name: "Puthiya", Logo: "https://github.com/user-attachments/assets/a75994e4-79b0-4cfe-8e9a-3c58b363bd4d"},
		{Name: "Maalaimalar", Logo: "https://github.com/user-attachments/assets/5f5f86df-c3f5-441e-b17a-2bbe0d67c0cf"},
		{Name: "Vikatan", Logo: "https://github.com/user-attachments/assets/4595e118-2a8d-473f-ad52-c3a570b8faff"},
		{Name: "Hindu", Logo: "https://github.com/user-attachments/assets/74d701b3-8c39-4a81-852a-894b913160e4"},
		{Name: "Vatican", Logo: "https://github.com/user-attachments/assets/ba72faf4-f692-4146-9a83-eefd1faa7d02"},
		{Name: "Lankasri", Logo: "https://github.com/user-attachments/assets/5debee2c-649d-42c5-b788-a1eb6fed207a"},
		{Name: "Indian", Logo: "https://github.com/user-attachments/assets/a86ef7eb-2a3e-403e-8e3d-7423abd06290"},
		{Name: "Oneindia", Logo: "https://github.com/user-attachments/assets/2b8da88a-7f86-449d-a7ae-07af46f8ea0f"},
		{Name: "Goodreturns", Logo: "https://github.com/user-attachments/assets/beaf5902-2854-454a-a8ab-82668a40dc9b"},
		{Name: "Dinakaran", Logo: "https://github.com/user-attachments/assets/245caa6a-cd97-4ebd-9685-e6f4999c75f5"},
		{Name: "enewz", Logo: "https://github.com/user-attachments/assets/9c22e10f-2c0b-4255-8803-ad8b11606d74"},
		{Name: "News18", Logo: "https://github.com/user-attachments/assets/36cd082c-2782-4f79-895c-a00f2b07f7ad"},
		{Name: "News7", Logo: "https://github.com/user-attachments/assets/27c93e53-f869-4763-97b3-6877eb1af46f"},
		{Name: "BBC", Logo: "https://github.com/user-attachments/assets/54c18ff9-527d-4109-a1e0-37bd5e41d4e3"},
		{Name: "Dinamalar", Logo: "https://github.com/user-attachments/assets/3da84a03-828b-40fb-9eae-46d8c274f284"},
		{Name: "Dinasuvadu", Logo: "https://example.com/dinasuvadu-logo.jpg"},
	}
}

// DefaultUnknownLogo возвращает встроенный логотип для неизвестного издателя.
func DefaultUnknownLogo() string { return defaultUnknownLogo }

// DefaultCatalog возвращает каталог со встроенными издателями.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultPublishers(), defaultUnknownLogo)
	if err != nil {
		panic(fmt.Sprintf("enrich: invalid default catalog: %v", err))
	}
	return c
}
