package vars

// KSCO_GUIDE 한국표준직업분류(KSCO) 대분류 9 단순노무 종사자 기준표.
// Group lines are "NN. 이름"; occupation lines are "- NNNNN 이름 (English)".
const KSCO_GUIDE = `
9 단순노무 종사자 (Elementary Workers)

91. 건설 및 광업 관련 단순 노무직 (Construction and Mining Related Elementary Occupations)
- 91001 건설 단순 종사원 (Construction Laborers)
- 91002 광업 단순 종사원 (Mining Laborers)

92. 운송 관련 단순 노무직 (Transport Related Elementary Occupations)
- 92101 하역 및 적재 관련 단순 종사원 (Freight Loading and Lifting Laborers)
- 92102 이삿짐 운반원 (Moving Service Laborers)
- 92210 우편집배원 (Postmen)
- 92221 택배원 (Door to Door Deliverers)
- 92229 그 외 택배원
- 92230 음식 배달원 (Food Deliverers)
- 92291 음료 배달원 (Beverage Deliverers)
- 92292 신문 배달원 (Newspaper Deliverers)

93. 제조 관련 단순 노무직 (Production Related Elementary Occupations)
- 93001 수동 포장원 (Packing Laborers)
- 93002 수동 상표 부착원 (Labeling Laborers)
- 93003 제품 단순 선별원 (Product Screening Laborers)

94. 청소 및 경비 관련 단순 노무직 (Cleaning and Guard Related Elementary Occupations)
- 94111 건물 청소원 (Building Cleaners)
- 94112 운송장비 청소원 (Transport Vehicle Cleaners)
- 94121 쓰레기 수거원 (Garbage Collectors)
- 94122 거리 미화원 (Street Sweepers)
- 94123 재활용품 수거원 (Recyclables Collectors)
- 94211 아파트 경비원 (Apartment Concierges and Guards)
- 94212 건물 경비원 (Building Concierges and Guards)
- 94220 검표원 (Ticket Examiners)

95. 가사‧음식 및 판매 관련 단순 노무직 (Household Helpers, Cooking Attendants and Sales Related Elementary Workers)
- 95110 가사 도우미 (Domestic Chores Helpers)
- 95120 육아 도우미 (Infant Rearing Helpers)
- 95210 패스트푸드 준비원 (Fast-food Restaurant Workers)
- 95220 주방 보조원 (Kitchen Helpers)
- 95310 주유원 (Gas Station Attendants)
- 95391 매장 정리원 (Store Attendants)
- 95392 전단지 배포원 및 벽보원 (Wall Poster and Print-out Distributors)

99. 농림‧어업 및 기타 서비스 단순 노무직 (Agriculture, Forestry, Fishery and Other Service Elementary Occupations)
- 99101 농업 단순 종사원 (Agriculture Laborers)
- 99102 임업 단순 종사원 (Forestry Laborers)
- 99103 어업 단순 종사원 (Fishery Laborers)
- 99104 산불 감시원 (Forest Fire Watchmen)
- 99211 계기 검침원 (Gauge Readers)
- 99212 가스 점검원 (Gas Inspectors)
- 99220 자동판매기 관리원 (Vending Machine Operators)
- 99231 주차 관리원 (Parking Service Workers)
- 99232 주차 안내원 (Parking Attendants)
- 99910 구두 미화원 (Shoe Cleaners)
- 99920 세탁원 및 다림질원 (Laundry and Ironing Workers)
- 99991 환경 감시원 (Environmental Pollution Watchmen)
- 99992 대여 제품 방문 점검원 (Door-to-door Rental Equipment Examiners)
`
