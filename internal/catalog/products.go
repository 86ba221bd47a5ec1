package catalog

import "storefront/internal/models"

// DefaultCategories are the storefront's category pages.
var DefaultCategories = []models.Category{
	{ID: "cat_women", Name: "Women", Description: "Elegant dresses, tops, and accessories", Image: "https://images.unsplash.com/photo-1590735213920-68192a487bc2?w=600&h=400&fit=crop", Slug: "women"},
	{ID: "cat_men", Name: "Men", Description: "Traditional and modern menswear", Image: "https://images.unsplash.com/photo-1617127365659-c47fa864d8bc?w=600&h=400&fit=crop", Slug: "men"},
	{ID: "cat_accessories", Name: "Accessories", Description: "Jewelry, bags, and more", Image: "https://images.unsplash.com/photo-1573408301185-9146fe634ad0?w=600&h=400&fit=crop", Slug: "accessories"},
	{ID: "cat_home", Name: "Home & Living", Description: "Decor and lifestyle essentials", Image: "https://images.unsplash.com/photo-1606722590583-6951b5ea92ad?w=600&h=400&fit=crop", Slug: "home"},
	{ID: "cat_basics", Name: "Basics", Description: "Everyday essentials", Image: "/images/basics.jpg", Slug: "basics"},
}

// DefaultProducts is the XOF catalog. XOF is zero-decimal, so prices are
// whole francs: 45000 is displayed as 45 000 FCFA.
var DefaultProducts = []models.Product{
	{
		ID:              "prod_ankara_dress",
		Name:            "Ankara Maxi Dress",
		Description:     "Stunning floor-length dress featuring vibrant African print patterns.",
		LongDescription: "This breathtaking Ankara maxi dress combines traditional African craftsmanship with contemporary design. Made from premium 100% cotton Ankara fabric, it features a flattering fitted bodice that flows into an elegant full skirt. Perfect for special occasions, weddings, or making a statement at any event. The bold geometric patterns tell a story of African heritage while the modern cut ensures you look effortlessly chic.",
		Price:           45000,
		Image:           "https://images.unsplash.com/photo-1590735213920-68192a487bc2?w=600&h=600&fit=crop",
		Images:          []string{"https://images.unsplash.com/photo-1590735213920-68192a487bc2?w=800&h=800&fit=crop", "https://images.unsplash.com/photo-1614252235316-8c857d38b5f4?w=800&h=800&fit=crop"},
		Category:        "women",
		Tags:            []string{"dress", "ankara", "occasion"},
		InStock:         true,
		Rating:          4.8,
		ReviewCount:     124,
		Featured:        true,
		IsBestSeller:    true,
	},
	{
		ID:              "prod_kente_blouse",
		Name:            "Kente Print Blouse",
		Description:     "Modern blouse with authentic Kente-inspired patterns.",
		LongDescription: "A beautiful fusion of tradition and modernity, this Kente print blouse brings the regal heritage of Ghana to your everyday wardrobe. The lightweight fabric makes it perfect for warm weather, while the timeless patterns ensure you stand out in any setting.",
		Price:           22000,
		Image:           "https://images.unsplash.com/photo-1614252235316-8c857d38b5f4?w=600&h=600&fit=crop",
		Category:        "women",
		Tags:            []string{"blouse", "kente", "casual"},
		InStock:         true,
		Rating:          4.6,
		ReviewCount:     89,
		IsNew:           true,
	},
	{
		ID:              "prod_african_wrap_skirt",
		Name:            "African Wrap Skirt",
		Description:     "Versatile wrap skirt in bold African print.",
		LongDescription: "This versatile wrap skirt is a wardrobe essential. Featuring adjustable ties, it fits multiple sizes and can be styled in various ways. The vibrant African print adds a pop of color to any outfit.",
		Price:           18000,
		Image:           "https://images.unsplash.com/photo-1607823489283-1deb240f9e27?w=600&h=600&fit=crop",
		Category:        "women",
		Tags:            []string{"skirt", "wrap", "casual"},
		InStock:         true,
		Rating:          4.7,
		ReviewCount:     156,
		IsBestSeller:    true,
	},
	{
		ID:              "prod_dashiki_tunic",
		Name:            "Embroidered Dashiki Tunic",
		Description:     "Comfortable tunic with intricate hand embroidery.",
		LongDescription: "Experience the artistry of West African embroidery with this stunning Dashiki tunic. Each piece features hand-stitched details around the neckline and sleeves, making every tunic unique.",
		Price:           28000,
		Image:           "https://images.unsplash.com/photo-1544441893-675973e31985?w=600&h=600&fit=crop",
		Category:        "women",
		Tags:            []string{"tunic", "dashiki", "embroidered"},
		InStock:         true,
		Rating:          4.9,
		ReviewCount:     67,
		Featured:        true,
	},
	{
		ID:              "prod_agbada_set",
		Name:            "Premium Agbada Set",
		Description:     "Three-piece traditional Agbada outfit for special occasions.",
		LongDescription: "Make a grand entrance with this premium Agbada set. Consisting of the flowing outer robe (Agbada), inner shirt (Buba), and matching trousers (Sokoto), this outfit is perfect for weddings, ceremonies, and important celebrations. Crafted from rich Damask fabric with elegant embroidery.",
		Price:           95000,
		CompareAtPrice:  115000,
		Image:           "https://images.unsplash.com/photo-1617127365659-c47fa864d8bc?w=600&h=600&fit=crop",
		Category:        "men",
		Tags:            []string{"agbada", "traditional", "occasion"},
		InStock:         true,
		Rating:          4.9,
		ReviewCount:     234,
		Featured:        true,
		IsBestSeller:    true,
	},
	{
		ID:              "prod_ankara_shirt",
		Name:            "Ankara Print Shirt",
		Description:     "Modern slim-fit shirt with bold African patterns.",
		LongDescription: "This contemporary Ankara shirt brings African flair to your everyday wardrobe. The slim-fit cut provides a modern silhouette, while the breathable cotton fabric ensures all-day comfort.",
		Price:           20000,
		Image:           "https://images.unsplash.com/photo-1622445275576-721325763afe?w=600&h=600&fit=crop",
		Category:        "men",
		Tags:            []string{"shirt", "ankara", "casual"},
		InStock:         true,
		Rating:          4.5,
		ReviewCount:     178,
		IsNew:           true,
	},
	{
		ID:              "prod_kaftan_men",
		Name:            "Embroidered Kaftan",
		Description:     "Elegant kaftan with detailed embroidery work.",
		LongDescription: "This elegant kaftan features exquisite embroidery around the neckline and cuffs. Perfect for Friday prayers, casual outings, or relaxed weekends, it combines comfort with sophistication.",
		Price:           35000,
		Image:           "https://images.unsplash.com/photo-1594938298603-c8148c4dae35?w=600&h=600&fit=crop",
		Category:        "men",
		Tags:            []string{"kaftan", "traditional", "embroidered"},
		InStock:         true,
		Rating:          4.7,
		ReviewCount:     92,
	},
	{
		ID:              "prod_senator_suit",
		Name:            "Senator Suit",
		Description:     "Classic Nigerian Senator style with modern tailoring.",
		LongDescription: "The Senator suit remains a timeless choice for the modern African man. This two-piece set features clean lines and expert tailoring, perfect for business meetings, formal events, or making an impression.",
		Price:           55000,
		Image:           "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=600&h=600&fit=crop",
		Category:        "men",
		Tags:            []string{"senator", "formal", "suit"},
		InStock:         true,
		Rating:          4.8,
		ReviewCount:     145,
		Featured:        true,
	},
	{
		ID:              "prod_beaded_necklace",
		Name:            "Handcrafted Beaded Necklace",
		Description:     "Statement necklace featuring traditional African beadwork.",
		LongDescription: "Each bead in this stunning necklace is hand-selected and strung by skilled artisans. The colorful patterns draw inspiration from various African cultures, creating a unique piece that celebrates the continent's rich heritage.",
		Price:           15000,
		Image:           "https://images.unsplash.com/photo-1573408301185-9146fe634ad0?w=600&h=600&fit=crop",
		Category:        "accessories",
		Tags:            []string{"jewelry", "necklace", "beaded"},
		InStock:         true,
		Rating:          4.9,
		ReviewCount:     312,
		IsBestSeller:    true,
	},
	{
		ID:              "prod_ankara_bag",
		Name:            "Ankara Tote Bag",
		Description:     "Spacious tote bag with vibrant African print exterior.",
		LongDescription: "Carry a piece of Africa wherever you go with this beautiful Ankara tote bag. Featuring a sturdy canvas lining and genuine leather straps, it's both practical and stylish. Perfect for shopping, work, or weekend adventures.",
		Price:           22000,
		Image:           "https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=600&h=600&fit=crop",
		Category:        "accessories",
		Tags:            []string{"bag", "tote", "ankara"},
		InStock:         true,
		Rating:          4.6,
		ReviewCount:     87,
		IsNew:           true,
	},
	{
		ID:              "prod_brass_earrings",
		Name:            "Brass Fulani Earrings",
		Description:     "Traditional Fulani-inspired brass earrings.",
		LongDescription: "These stunning earrings are inspired by traditional Fulani jewelry. Hand-hammered from solid brass and finished with a protective coating to prevent tarnishing, they add an authentic African touch to any outfit.",
		Price:           10000,
		Image:           "https://images.unsplash.com/photo-1630019852942-f89202989a59?w=600&h=600&fit=crop",
		Category:        "accessories",
		Tags:            []string{"jewelry", "earrings", "brass"},
		InStock:         true,
		Rating:          4.8,
		ReviewCount:     203,
		Featured:        true,
	},
	{
		ID:              "prod_leather_sandals",
		Name:            "Handmade Leather Sandals",
		Description:     "Comfortable leather sandals with traditional beadwork.",
		LongDescription: "These beautiful sandals combine genuine leather craftsmanship with colorful Maasai-inspired beadwork. Each pair is handmade by skilled artisans, ensuring unique details and superior comfort.",
		Price:           18000,
		Image:           "https://images.unsplash.com/photo-1603487742131-4160ec999306?w=600&h=600&fit=crop",
		Category:        "accessories",
		Tags:            []string{"shoes", "sandals", "leather"},
		InStock:         true,
		Rating:          4.7,
		ReviewCount:     156,
	},
	{
		ID:              "prod_mudcloth_pillow",
		Name:            "Mudcloth Throw Pillow",
		Description:     "Authentic Malian mudcloth pillow cover.",
		LongDescription: "Add a touch of African artistry to your home with this authentic mudcloth pillow cover. Made in Mali using traditional techniques passed down through generations, each piece features hand-painted geometric patterns.",
		Price:           12000,
		Image:           "https://images.unsplash.com/photo-1606722590583-6951b5ea92ad?w=600&h=600&fit=crop",
		Category:        "home",
		Tags:            []string{"pillow", "mudcloth", "decor"},
		InStock:         true,
		Rating:          4.9,
		ReviewCount:     89,
		Featured:        true,
	},
	{
		ID:              "prod_kente_table_runner",
		Name:            "Kente Table Runner",
		Description:     "Handwoven Kente cloth table runner.",
		LongDescription: "Transform your dining table with this magnificent Kente cloth table runner. Handwoven by skilled Ghanaian artisans using traditional techniques, it features the iconic geometric patterns that have made Kente famous worldwide.",
		Price:           28000,
		Image:           "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=600&h=600&fit=crop",
		Category:        "home",
		Tags:            []string{"table", "kente", "decor"},
		InStock:         true,
		Rating:          4.8,
		ReviewCount:     67,
		IsNew:           true,
	},
	{
		ID:              "prod_basket_set",
		Name:            "Woven Storage Basket Set",
		Description:     "Set of 3 handwoven baskets in varying sizes.",
		LongDescription: "These beautiful storage baskets are handwoven from natural elephant grass by skilled artisans. Perfect for organizing your home while adding authentic African style. Set includes three nesting sizes.",
		Price:           20000,
		Image:           "https://images.unsplash.com/photo-1595428774223-ef52624120d2?w=600&h=600&fit=crop",
		Category:        "home",
		Tags:            []string{"basket", "storage", "decor"},
		InStock:         true,
		Rating:          4.7,
		ReviewCount:     134,
		IsBestSeller:    true,
	},
	{
		ID:              "prod_ankara_lampshade",
		Name:            "Ankara Drum Lampshade",
		Description:     "Vibrant Ankara fabric lampshade to brighten any room.",
		LongDescription: "Light up your space with African style. This drum lampshade is covered in vibrant Ankara fabric, creating a warm and colorful glow when illuminated. Perfect for bedrooms, living rooms, or offices.",
		Price:           14000,
		Image:           "https://images.unsplash.com/photo-1513506003901-1e6a229e2d15?w=600&h=600&fit=crop",
		Category:        "home",
		Tags:            []string{"lighting", "lampshade", "ankara"},
		InStock:         true,
		Rating:          4.6,
		ReviewCount:     45,
	},

	// Basics carry translation keys instead of literal names.
	{ID: "tshirt", NameKey: "product.tshirt.name", DescriptionKey: "product.tshirt.description", Price: 5000, Image: "/images/tshirt.jpg", Category: "basics", Tags: []string{"apparel"}, InStock: true},
	{ID: "hoodie", NameKey: "product.hoodie.name", DescriptionKey: "product.hoodie.description", Price: 15000, Image: "/images/hoodie.jpg", Category: "basics", Tags: []string{"apparel"}, InStock: true},
	{ID: "cap", NameKey: "product.cap.name", DescriptionKey: "product.cap.description", Price: 3500, Image: "/images/cap.jpg", Category: "basics", Tags: []string{"accessory"}, InStock: true},
	{ID: "bag", NameKey: "product.bag.name", DescriptionKey: "product.bag.description", Price: 4000, Image: "/images/bag.jpg", Category: "basics", Tags: []string{"accessory"}, InStock: true},
}

// NewDefault builds the catalog from DefaultProducts and DefaultCategories.
func NewDefault(currency Currency, opts ...Option) (*Catalog, error) {
	return New(DefaultProducts, DefaultCategories, currency, opts...)
}
