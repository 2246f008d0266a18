package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format keys double as the English text.
const (
	msgProductsHeader   = "===== Products ====="
	msgProductLine      = "%d. %s - ¥%s (stock: %d)"
	msgDetailHeader     = "===== Product Details ====="
	msgDetailID         = "Product ID: %d"
	msgDetailName       = "Name: %s"
	msgDetailPrice      = "Price: ¥%s"
	msgDetailDesc       = "Description: %s"
	msgDetailStock      = "Stock: %d"
	msgLoginOK          = "Login successful, welcome back, %s!"
	msgLoginExisting    = "Already logged in as %s"
	msgLogout           = "%s logged out"
	msgItemAdded        = "Added %s x %d to cart"
	msgItemMerged       = "Updated %s quantity to %d"
	msgCartEmpty        = "Your cart is empty"
	msgCartHeader       = "===== Cart ====="
	msgCartLine         = "%d. %s - ¥%s x %d = ¥%s"
	msgCartTotal        = "Total: ¥%s"
	msgOrderCreated     = "Order created, order ID: %d, total: ¥%s"
	msgOrderPaid        = "Order %d paid successfully!"
	msgAlreadyPaid      = "Order %d has already been paid"
	msgOrderNotFound    = "Order %d not found"
	msgProductNotFound  = "Product %d not found"
	msgInvalidQuantity  = "Quantity must be greater than 0"
	msgInsufficient     = "Sorry, %v"
	msgEmptyCart        = "Cart is empty, cannot create order"
	msgAuthFailed       = "Incorrect username or password, login failed"
	msgNotAuthenticated = "Please log in first"
	msgUnexpected       = "Unexpected error: %v"
	msgOrders           = "Orders: %d"
	msgOrderLine        = "#%d %s ¥%s"
	msgStep             = "--- %d. %s ---"
	msgWelcome          = "Welcome to the shopping simulation!"
	msgFarewell         = "Shopping simulation finished, thank you!"
)

// Step titles of the scripted run
const (
	StepBrowse      = "Browse the product list"
	StepDetail      = "View product details"
	StepLogin       = "Log in"
	StepAddToCart   = "Add products to the cart"
	StepCreateOrder = "Place the order"
	StepPay         = "Pay"
)

func init() {
	zh := language.Chinese
	for key, text := range map[string]string{
		msgProductsHeader:   "===== 商品列表 =====",
		msgProductLine:      "%d. %s - ¥%s (库存: %d)",
		msgDetailHeader:     "===== 商品详情 =====",
		msgDetailID:         "商品ID: %d",
		msgDetailName:       "商品名称: %s",
		msgDetailPrice:      "价格: ¥%s",
		msgDetailDesc:       "描述: %s",
		msgDetailStock:      "库存: %d件",
		msgLoginOK:          "登录成功，欢迎回来，%s！",
		msgLoginExisting:    "您已经登录，用户: %s",
		msgLogout:           "%s已登出",
		msgItemAdded:        "已将%s x %d添加到购物车",
		msgItemMerged:       "已将%s数量更新为%d",
		msgCartEmpty:        "您的购物车是空的",
		msgCartHeader:       "===== 购物车 =====",
		msgCartLine:         "%d. %s - ¥%s x %d = ¥%s",
		msgCartTotal:        "总计: ¥%s",
		msgOrderCreated:     "订单创建成功，订单ID: %d，总金额: ¥%s",
		msgOrderPaid:        "订单%d支付成功！",
		msgAlreadyPaid:      "订单%d已经支付过了",
		msgOrderNotFound:    "找不到订单ID: %d",
		msgProductNotFound:  "找不到商品ID: %d",
		msgInvalidQuantity:  "数量必须大于0",
		msgInsufficient:     "抱歉，%v",
		msgEmptyCart:        "购物车为空，无法创建订单",
		msgAuthFailed:       "用户名或密码错误，登录失败",
		msgNotAuthenticated: "请先登录",
		msgUnexpected:       "未知错误: %v",
		msgOrders:           "订单数: %d",
		msgOrderLine:        "#%d %s ¥%s",
		msgStep:             "--- %d. %s ---",
		msgWelcome:          "欢迎来到电商购物系统模拟！",
		msgFarewell:         "购物流程模拟结束，谢谢使用！",
		StepBrowse:          "用户浏览商品列表",
		StepDetail:          "用户查看商品详情",
		StepLogin:           "用户登录",
		StepAddToCart:       "用户添加商品到购物车",
		StepCreateOrder:     "用户下单",
		StepPay:             "用户支付",
	} {
		if err := message.SetString(zh, key, text); err != nil {
			panic(err)
		}
	}
}
