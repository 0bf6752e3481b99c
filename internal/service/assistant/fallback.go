package assistant

import "strings"

// fallbackRule maps one keyword group to one canned reply. Rules are
// checked in order; the first group with a hit wins.
type fallbackRule struct {
	keywords []string
	response string
}

var fallbackRules = []fallbackRule{
	{
		keywords: []string{"hồ gươm", "hoàn kiếm", "ho guom", "hoan kiem"},
		response: "Hồ Gươm nằm ngay trung tâm quận Hoàn Kiếm. Bạn có thể dạo quanh hồ, thăm đền Ngọc Sơn và cầu Thê Húc, đẹp nhất vào sáng sớm hoặc lúc lên đèn.",
	},
	{
		keywords: []string{"văn miếu", "van mieu", "quốc tử giám"},
		response: "Văn Miếu - Quốc Tử Giám mở cửa từ 8h đến 17h hằng ngày, vé vào cửa khoảng 30.000đ. Đây là trường đại học đầu tiên của Việt Nam đấy!",
	},
	{
		keywords: []string{"phố cổ", "pho co", "old quarter", "36 phố"},
		response: "Phố cổ Hà Nội là nơi tuyệt vời để đi bộ: 36 phố phường, nhà cổ Mã Mây, chợ đêm cuối tuần và rất nhiều hàng quán ngon.",
	},
	{
		keywords: []string{"ăn gì", "món ăn", "phở", "bún", "ẩm thực", "quán ăn", "food"},
		response: "Đến Hà Nội bạn nhất định nên thử phở bò, bún chả, chả cá Lã Vọng và cà phê trứng. Khu phố cổ có rất nhiều quán lâu đời!",
	},
	{
		keywords: []string{"khách sạn", "homestay", "hotel", "chỗ nghỉ", "lưu trú"},
		response: "Về chỗ nghỉ, khu vực Hoàn Kiếm và phố cổ tiện đi lại nhất; quanh Hồ Tây yên tĩnh và nhiều homestay đẹp. Bạn có thể xem mục Địa điểm để lọc theo giá nhé.",
	},
	{
		keywords: []string{"cảm ơn", "cám ơn", "thank"},
		response: "Rất vui được giúp bạn! Chúc bạn có chuyến đi thật vui ở Hà Nội.",
	},
}

// fallbackDefault is used when no keyword group matches.
const fallbackDefault = "Xin lỗi, mình đang gặp chút trục trặc khi kết nối. Bạn có thể hỏi mình về địa điểm tham quan, ẩm thực hoặc chỗ nghỉ ở Hà Nội nhé!"

// FallbackReply produces a canned reply for the given user text when the
// assistant service is unreachable. Pure function of its input: the same
// text always yields the same response.
func FallbackReply(text string) string {
	lowered := strings.ToLower(text)
	for _, rule := range fallbackRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.response
			}
		}
	}
	return fallbackDefault
}
