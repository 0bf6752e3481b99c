package place

// Seed returns the built-in Hanoi catalog used until the place service
// feeds the assistant directly.
func Seed() []Place {
	return []Place{
		{
			ID:            1,
			Name:          "Hồ Gươm",
			Description:   "Hồ nước trung tâm Hà Nội với đền Ngọc Sơn và cầu Thê Húc.",
			MainImageURL:  "https://cdn.hanoivivu.vn/places/ho-guom.jpg",
			RatingAverage: 4.8,
			Keywords:      []string{"hồ gươm", "hoàn kiếm", "ho guom", "hoan kiem", "đền ngọc sơn"},
		},
		{
			ID:            2,
			Name:          "Văn Miếu - Quốc Tử Giám",
			Description:   "Trường đại học đầu tiên của Việt Nam, xây dựng từ năm 1070.",
			MainImageURL:  "https://cdn.hanoivivu.vn/places/van-mieu.jpg",
			RatingAverage: 4.7,
			Keywords:      []string{"văn miếu", "quốc tử giám", "van mieu"},
		},
		{
			ID:            3,
			Name:          "Phố cổ Hà Nội",
			Description:   "36 phố phường với kiến trúc, ẩm thực và nhịp sống đặc trưng.",
			MainImageURL:  "https://cdn.hanoivivu.vn/places/pho-co.jpg",
			RatingAverage: 4.6,
			Keywords:      []string{"phố cổ", "pho co", "old quarter", "36 phố phường"},
		},
		{
			ID:            4,
			Name:          "Lăng Chủ tịch Hồ Chí Minh",
			Description:   "Quần thể lăng, bảo tàng và chùa Một Cột tại quảng trường Ba Đình.",
			MainImageURL:  "https://cdn.hanoivivu.vn/places/lang-bac.jpg",
			RatingAverage: 4.9,
			Keywords:      []string{"lăng bác", "ba đình", "chùa một cột", "lang bac"},
		},
		{
			ID:            5,
			Name:          "Hồ Tây",
			Description:   "Hồ lớn nhất Hà Nội, nổi tiếng với chùa Trấn Quốc và hoàng hôn.",
			MainImageURL:  "https://cdn.hanoivivu.vn/places/ho-tay.jpg",
			RatingAverage: 4.5,
			Keywords:      []string{"hồ tây", "trấn quốc", "ho tay", "west lake"},
		},
		{
			ID:            6,
			Name:          "Nhà hát Lớn Hà Nội",
			Description:   "Công trình kiến trúc Pháp cổ điển hoàn thành năm 1911.",
			MainImageURL:  "https://cdn.hanoivivu.vn/places/nha-hat-lon.jpg",
			RatingAverage: 4.4,
			Keywords:      []string{"nhà hát lớn", "opera house", "nha hat lon"},
		},
	}
}
