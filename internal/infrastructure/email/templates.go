package email

import (
	"fmt"

	"gymangel-backend/internal/shared"
)

// RenderNotification map kind + context thành subject/body. Domain services
// không bao giờ tự build nội dung email; mọi wording nằm ở đây một chỗ.
func RenderNotification(kind shared.NotificationKind, ctx map[string]string) (subject, body string, err error) {
	name := ctx["full_name"]
	if name == "" {
		name = "bạn"
	}

	switch kind {
	case shared.NotifyOrderConfirmation:
		subject = fmt.Sprintf("Xác nhận đơn hàng %s", ctx["order_number"])
		body = fmt.Sprintf(`Chào %s,

Đơn hàng %s của bạn đã được tiếp nhận.

Tổng tiền: %s VND (%s sản phẩm).

Chúng tôi sẽ liên hệ khi đơn hàng được giao cho đơn vị vận chuyển.`,
			name, ctx["order_number"], ctx["total"], ctx["item_count"])

	case shared.NotifyMembershipActivated:
		subject = "Gói tập của bạn đã được kích hoạt"
		body = fmt.Sprintf(`Chào %s,

Gói %s của bạn đã được kích hoạt.

Thời hạn: %s đến %s.
Số tiền: %s VND.

Hẹn gặp bạn tại phòng tập!`,
			name, ctx["plan_name"], ctx["start_date"], ctx["expiry_date"], ctx["amount"])

	case shared.NotifyRenewalReminder30, shared.NotifyRenewalReminder14, shared.NotifyRenewalReminder7:
		subject = "Gói tập của bạn sắp hết hạn"
		renewalNote := "Bạn đã bật gia hạn tự động, chúng tôi sẽ tự gia hạn trước ngày hết hạn."
		if ctx["auto_renewal"] != "true" {
			renewalNote = "Gia hạn tự động đang tắt. Vui lòng gia hạn để không gián đoạn lịch tập."
		}
		body = fmt.Sprintf(`Chào %s,

Gói %s của bạn sẽ hết hạn vào ngày %s.

%s`,
			name, ctx["plan_name"], ctx["expiry_date"], renewalNote)

	case shared.NotifyRenewalSuccess:
		subject = "Gia hạn gói tập thành công"
		body = fmt.Sprintf(`Chào %s,

Gói %s của bạn đã được gia hạn.

Thời hạn mới: %s đến %s.
Số tiền: %s VND.`,
			name, ctx["plan_name"], ctx["start_date"], ctx["expiry_date"], ctx["amount"])

	case shared.NotifyGracePeriodNotice:
		subject = "Không thể gia hạn gói tập của bạn"
		body = fmt.Sprintf(`Chào %s,

Chúng tôi chưa thể gia hạn gói tập của bạn. Bạn vẫn có thể vào phòng tập
đến hết ngày %s trong thời gian chờ thanh toán.

Vui lòng kiểm tra phương thức thanh toán hoặc gia hạn thủ công trước ngày trên.`,
			name, ctx["grace_period_end"])

	case shared.NotifyMembershipSuspended:
		subject = "Gói tập của bạn đã bị tạm ngưng"
		body = fmt.Sprintf(`Chào %s,

Gói %s của bạn đã bị tạm ngưng do chưa hoàn tất thanh toán gia hạn.

Đăng ký gói mới bất kỳ lúc nào để tiếp tục tập luyện.`,
			name, ctx["plan_name"])

	default:
		return "", "", fmt.Errorf("unknown notification kind: %s", kind)
	}

	return subject, body, nil
}
